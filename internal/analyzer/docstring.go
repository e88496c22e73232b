package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/pyparse"
)

// docstringFromBody returns the docstring of a declaration body, looking
// only at the first statement. Anything other than a bare string-literal
// expression there means no docstring; adjacent literals are not
// concatenated.
func docstringFromBody(body *sitter.Node, source []byte) *string {
	if body == nil {
		return nil
	}

	// Comments are extra nodes, not statements; skip to the first real one.
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if child := body.NamedChild(i); child.Type() != "comment" {
			first = child
			break
		}
	}
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return nil
	}

	str := first.NamedChild(0)
	// Adjacent literals are not concatenated; only the first one counts.
	if str.Type() == "concatenated_string" && str.NamedChildCount() > 0 {
		str = str.NamedChild(0)
	}
	if str.Type() != "string" {
		return nil
	}

	value := stripStringLiteral(pyparse.Text(str, source))
	return &value
}

// stripStringLiteral removes string prefixes (r, b, f, u in any case and
// combination) and the surrounding quotes from a string literal.
func stripStringLiteral(raw string) string {
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
			i++
			continue
		}
		break
	}
	raw = raw[i:]

	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}
