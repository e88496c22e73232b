package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/pyparse"
)

// extractRelationships performs the second full walk of the tree and
// classifies every call and attribute-access expression by syntactic
// shape alone. The walk is not scoped to declarations: calls inside
// methods, nested functions and module-level statements all count.
//
// A call through a receiver that is itself a method call's receiver
// expression also emits an attribute-access record, so method calls are
// double-counted under attribute access. Calls through more complex
// receivers (chained calls, subscripts) are silently skipped. No caller
// identity is attached to any record.
func extractRelationships(root *sitter.Node, source []byte) Relationships {
	rels := Relationships{
		FunctionCalls:   make([]FunctionCall, 0),
		MethodCalls:     make([]MethodCall, 0),
		AttributeAccess: make([]AttributeAccess, 0),
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "call":
			if fn := n.ChildByFieldName("function"); fn != nil {
				switch fn.Type() {
				case "identifier":
					rels.FunctionCalls = append(rels.FunctionCalls, FunctionCall{
						Callee: pyparse.Text(fn, source),
					})
				case "attribute":
					obj := fn.ChildByFieldName("object")
					if obj != nil && obj.Type() == "identifier" {
						rels.MethodCalls = append(rels.MethodCalls, MethodCall{
							Object: pyparse.Text(obj, source),
							Method: pyparse.Text(fn.ChildByFieldName("attribute"), source),
						})
					}
				}
			}

		case "attribute":
			obj := n.ChildByFieldName("object")
			if obj != nil && obj.Type() == "identifier" {
				rels.AttributeAccess = append(rels.AttributeAccess, AttributeAccess{
					Object:    pyparse.Text(obj, source),
					Attribute: pyparse.Text(n.ChildByFieldName("attribute"), source),
				})
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return rels
}
