package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/pyparse"
)

// declarations holds the output of the classification pass.
type declarations struct {
	functions []FunctionRecord
	classes   []ClassRecord
	imports   []ImportRecord
}

// classifyDeclarations performs one pre-order walk of the tree and
// buckets declarations into free functions, classes with their methods,
// and imports. Emission order is traversal order, which matches source
// declaration order for sibling declarations.
//
// A function counts as a method only when it sits directly inside a
// class body; the parent chain decides, so a free function and a method
// may share a name, and a closure nested inside another function stays
// a free function.
func classifyDeclarations(root *sitter.Node, source []byte) declarations {
	decls := declarations{
		functions: make([]FunctionRecord, 0),
		classes:   make([]ClassRecord, 0),
		imports:   make([]ImportRecord, 0),
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if !inClassBody(n) {
				decls.functions = append(decls.functions, buildFunction(n, source))
			}
		case "class_definition":
			decls.classes = append(decls.classes, buildClass(n, source))
		case "import_statement":
			decls.imports = append(decls.imports, plainImports(n, source)...)
		case "import_from_statement":
			decls.imports = append(decls.imports, fromImports(n, source)...)
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return decls
}

// inClassBody reports whether a definition node sits directly inside a
// class body block. Decorated definitions are positioned by their
// decorated_definition wrapper.
func inClassBody(n *sitter.Node) bool {
	pos := n
	if p := pos.Parent(); p != nil && p.Type() == "decorated_definition" {
		pos = p
	}

	block := pos.Parent()
	if block == nil || block.Type() != "block" {
		return false
	}
	owner := block.Parent()
	return owner != nil && owner.Type() == "class_definition"
}

// buildFunction extracts name, ordered parameter names, return
// annotation and docstring from a function_definition node. The receiver
// parameter of a method is kept like any other parameter.
func buildFunction(n *sitter.Node, source []byte) FunctionRecord {
	rec := FunctionRecord{
		Name:   pyparse.Text(n.ChildByFieldName("name"), source),
		Args:   make([]string, 0),
		Lineno: int(n.StartPoint().Row) + 1,
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			if name, ok := parameterName(params.NamedChild(i), source); ok {
				rec.Args = append(rec.Args, name)
			}
		}
	}

	if ret := n.ChildByFieldName("return_type"); ret != nil {
		if text := renderAnnotation(ret, source); text != "" {
			rec.Returns = &text
		}
	}

	rec.Docstring = docstringFromBody(n.ChildByFieldName("body"), source)
	return rec
}

// parameterName resolves the declared name of one parameter node.
// Bare separators (/ and *) carry no name and are skipped.
func parameterName(param *sitter.Node, source []byte) (string, bool) {
	switch param.Type() {
	case "identifier":
		return pyparse.Text(param, source), true

	case "default_parameter", "typed_default_parameter":
		if name := param.ChildByFieldName("name"); name != nil {
			return pyparse.Text(name, source), true
		}

	case "typed_parameter":
		for i := 0; i < int(param.NamedChildCount()); i++ {
			child := param.NamedChild(i)
			if child.Type() == "identifier" {
				return pyparse.Text(child, source), true
			}
		}

	case "list_splat_pattern":
		if id := firstIdentifier(param, source); id != "" {
			return "*" + id, true
		}

	case "dictionary_splat_pattern":
		if id := firstIdentifier(param, source); id != "" {
			return "**" + id, true
		}
	}
	return "", false
}

func firstIdentifier(n *sitter.Node, source []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "identifier" {
			return pyparse.Text(child, source)
		}
	}
	return ""
}

// buildClass extracts a class declaration with its base references and
// the methods declared directly in its body, in source order.
func buildClass(n *sitter.Node, source []byte) ClassRecord {
	rec := ClassRecord{
		Name:    pyparse.Text(n.ChildByFieldName("name"), source),
		Bases:   make([]string, 0),
		Methods: make([]FunctionRecord, 0),
		Lineno:  int(n.StartPoint().Row) + 1,
	}

	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			child := supers.NamedChild(i)
			switch child.Type() {
			case "identifier", "attribute":
				rec.Bases = append(rec.Bases, pyparse.Text(child, source))
			}
		}
	}

	body := n.ChildByFieldName("body")
	rec.Docstring = docstringFromBody(body, source)

	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			stmt := body.NamedChild(i)
			if stmt.Type() == "decorated_definition" {
				if def := stmt.ChildByFieldName("definition"); def != nil {
					stmt = def
				}
			}
			if stmt.Type() == "function_definition" {
				rec.Methods = append(rec.Methods, buildFunction(stmt, source))
			}
		}
	}

	return rec
}

// plainImports parses an import_statement into one record per imported
// name, keeping aliases.
func plainImports(n *sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			records = append(records, ImportRecord{
				Type: ImportPlain,
				Name: pyparse.Text(child, source),
			})
		case "aliased_import":
			records = append(records, ImportRecord{
				Type:  ImportPlain,
				Name:  pyparse.Text(child.ChildByFieldName("name"), source),
				Alias: pyparse.Text(child.ChildByFieldName("alias"), source),
			})
		}
	}
	return records
}

// fromImports parses an import_from_statement. The module is kept in its
// written form; a fully relative import (from . import x) yields an
// empty module.
func fromImports(n *sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	moduleNode := n.ChildByFieldName("module_name")
	module := pyparse.Text(moduleNode, source)
	if isOnlyDots(module) {
		module = ""
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}

		switch child.Type() {
		case "dotted_name":
			records = append(records, ImportRecord{
				Type:   ImportFrom,
				Module: module,
				Name:   pyparse.Text(child, source),
			})
		case "aliased_import":
			records = append(records, ImportRecord{
				Type:   ImportFrom,
				Module: module,
				Name:   pyparse.Text(child.ChildByFieldName("name"), source),
				Alias:  pyparse.Text(child.ChildByFieldName("alias"), source),
			})
		case "wildcard_import":
			records = append(records, ImportRecord{
				Type:   ImportFrom,
				Module: module,
				Name:   "*",
			})
		}
	}
	return records
}

func isOnlyDots(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r != '.' {
			return false
		}
	}
	return true
}
