package analyzer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/pyparse"
)

// DefaultIgnoreDirs are directory names skipped during repository scans
// in addition to hidden directories.
var DefaultIgnoreDirs = []string{"__pycache__", "node_modules", "vendor", "venv", "site-packages"}

// ScanOptions adjusts repository-mode traversal.
type ScanOptions struct {
	// IgnoreDirs replaces DefaultIgnoreDirs when non-nil.
	IgnoreDirs []string

	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64
}

// AnalyzeRepository walks the directory subtree, parses every .py file
// and aggregates module names, a flattened function list and a
// caller-unaware call list. A file with a syntax error is silently
// excluded; the scan continues with its siblings.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, root string, opts ScanOptions) (*RepoResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &Error{
			Kind:    ErrPathNotFound,
			Message: fmt.Sprintf("File not found: %s", root),
		}
	}
	if !info.IsDir() {
		return nil, &Error{
			Kind:    ErrNotAFile,
			Message: fmt.Sprintf("Not a directory: %s", root),
		}
	}

	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = DefaultIgnoreDirs
	}
	ignored := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		ignored[name] = true
	}

	result := &RepoResult{
		Modules:   make([]string, 0),
		Functions: make([]RepoFunction, 0),
		Calls:     make([]RepoCall, 0),
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || ignored[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".py") {
			return nil
		}
		if opts.MaxFileSize > 0 {
			if info, err := d.Info(); err != nil || info.Size() > opts.MaxFileSize {
				return nil
			}
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		tree, err := a.parser.Parse(ctx, source)
		if err != nil {
			return nil // broken files are excluded from the aggregate
		}
		defer tree.Close()

		module, err := filepath.Rel(root, path)
		if err != nil {
			module = path
		}
		module = filepath.ToSlash(module)

		result.Modules = append(result.Modules, module)
		collectRepoEntries(tree.Root(), source, module, result)
		return nil
	})
	if walkErr != nil {
		return nil, &Error{
			Kind:    ErrInternal,
			Message: fmt.Sprintf("Scan failed: %v", walkErr),
		}
	}

	return result, nil
}

// collectRepoEntries flattens every function definition (methods
// included) and every recognizable call in one file into the aggregate.
// Attribute calls are recorded by their attribute name.
func collectRepoEntries(root *sitter.Node, source []byte, module string, result *RepoResult) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			result.Functions = append(result.Functions, RepoFunction{
				Name:   pyparse.Text(n.ChildByFieldName("name"), source),
				Module: module,
				Lineno: int(n.StartPoint().Row) + 1,
			})
		case "call":
			if fn := n.ChildByFieldName("function"); fn != nil {
				switch fn.Type() {
				case "identifier":
					result.Calls = append(result.Calls, RepoCall{Callee: pyparse.Text(fn, source)})
				case "attribute":
					result.Calls = append(result.Calls, RepoCall{Callee: pyparse.Text(fn.ChildByFieldName("attribute"), source)})
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}
