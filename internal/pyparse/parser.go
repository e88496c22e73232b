// Package pyparse wraps tree-sitter parsing of Python source text.
//
// Tree-sitter is error-tolerant and will happily return a tree full of
// ERROR nodes for broken input, so Parse re-checks the tree and reports a
// SyntaxError with the position of the first broken node instead.
package pyparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError describes a parse failure with its source position.
// Line is 1-based, Offset is the 0-based column of the offending token.
type SyntaxError struct {
	Msg    string `json:"msg"`
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (line %d, offset %d)", e.Msg, e.Line, e.Offset)
}

// Tree holds a parsed syntax tree together with the source it was built
// from. The underlying tree-sitter tree must outlive every node read from
// it, so callers keep the Tree for the duration of one analysis call.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Root returns the module node of the parsed file.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the raw source the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Parser parses Python source into syntax trees.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser configured with the Python grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source and returns the tree, or a *SyntaxError if the
// grammar could not make sense of the input.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		serr := firstSyntaxError(root)
		tree.Close()
		return nil, serr
	}

	return &Tree{tree: tree, source: source}, nil
}

// firstSyntaxError locates the first ERROR or missing node in the tree.
func firstSyntaxError(root *sitter.Node) *SyntaxError {
	var bad *sitter.Node

	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		if n.Type() == "ERROR" || n.IsMissing() {
			bad = n
			return true
		}
		if !n.HasError() {
			return false
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if walk(n.Child(i)) {
				return true
			}
		}
		return false
	}
	walk(root)

	serr := &SyntaxError{Msg: "invalid syntax"}
	if bad != nil {
		serr.Line = int(bad.StartPoint().Row) + 1
		serr.Offset = int(bad.StartPoint().Column)
	}
	return serr
}

// Text returns the source text covered by a node.
func Text(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}
