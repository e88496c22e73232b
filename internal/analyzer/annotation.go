package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/pyparse"
)

// renderAnnotation reconstructs the canonical source text of a type
// annotation expression. Simple names, dotted attribute chains,
// subscripted generics and literal sequences are rebuilt structurally;
// anything else falls back to the raw node text. It never fails: any
// internal problem degrades to the empty string, which callers treat as
// an absent annotation.
func renderAnnotation(node *sitter.Node, source []byte) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	if node == nil {
		return ""
	}
	return renderExpr(node, source)
}

func renderExpr(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "type":
		// The grammar wraps annotation expressions in a type node.
		if node.NamedChildCount() > 0 {
			return renderExpr(node.NamedChild(0), source)
		}
		return pyparse.Text(node, source)

	case "identifier", "none", "string":
		return pyparse.Text(node, source)

	case "attribute":
		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		if obj == nil || attr == nil {
			return pyparse.Text(node, source)
		}
		return renderExpr(obj, source) + "." + pyparse.Text(attr, source)

	case "subscript":
		value := node.ChildByFieldName("value")
		if value == nil {
			return pyparse.Text(node, source)
		}
		args := make([]string, 0, node.NamedChildCount())
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.StartByte() == value.StartByte() && child.EndByte() == value.EndByte() {
				continue
			}
			args = append(args, renderExpr(child, source))
		}
		return renderExpr(value, source) + "[" + strings.Join(args, ", ") + "]"

	case "list":
		parts := make([]string, 0, node.NamedChildCount())
		for i := 0; i < int(node.NamedChildCount()); i++ {
			parts = append(parts, renderExpr(node.NamedChild(i), source))
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case "tuple":
		parts := make([]string, 0, node.NamedChildCount())
		for i := 0; i < int(node.NamedChildCount()); i++ {
			parts = append(parts, renderExpr(node.NamedChild(i), source))
		}
		return "(" + strings.Join(parts, ", ") + ")"

	default:
		return pyparse.Text(node, source)
	}
}
