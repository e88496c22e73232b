package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pylens/internal/pyparse"
)

// Analyzer runs the analysis passes over Python source files. It holds
// only the front-end parser; every call is self-contained and safe to
// repeat.
type Analyzer struct {
	parser *pyparse.Parser
}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{parser: pyparse.NewParser()}
}

// AnalyzeFile validates the path, parses the file and runs the analysis
// passes. Failures come back as *Error; the two outcomes are mutually
// exclusive, a broken file produces no partial result.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Analysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{
			Kind:    ErrPathNotFound,
			Message: fmt.Sprintf("File not found: %s", path),
		}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{
			Kind:    ErrNotAFile,
			Message: fmt.Sprintf("Not a regular file: %s", path),
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Kind:    ErrInternal,
			Message: fmt.Sprintf("Failed to read file: %v", err),
		}
	}

	return a.AnalyzeSource(ctx, source)
}

// AnalyzeSource analyzes in-memory source text: two independent tree
// walks (declarations, then relationships), metrics over both plus the
// raw text, then insights over the metrics.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source []byte) (*Analysis, error) {
	tree, err := a.parser.Parse(ctx, source)
	if err != nil {
		var serr *pyparse.SyntaxError
		if errors.As(err, &serr) {
			return nil, &Error{
				Kind:    ErrSyntax,
				Message: fmt.Sprintf("Syntax error: %s", serr.Error()),
				Line:    serr.Line,
				Offset:  serr.Offset,
			}
		}
		return nil, &Error{
			Kind:    ErrInternal,
			Message: fmt.Sprintf("Parse failed: %v", err),
		}
	}
	defer tree.Close()

	root := tree.Root()
	decls := classifyDeclarations(root, source)
	rels := extractRelationships(root, source)
	metrics := computeMetrics(source, decls, rels)

	return &Analysis{
		Functions:     decls.functions,
		Classes:       decls.classes,
		Imports:       decls.imports,
		Relationships: rels,
		Metrics:       metrics,
		Insights:      generateInsights(metrics),
	}, nil
}
