package ctree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Function is a single function_definition located in a translation unit.
type Function struct {
	Name      string
	Node      *sitter.Node // the function_definition node
	Body      *sitter.Node // compound_statement; never nil, bodyless prototypes are skipped
	Start     int          // 1-based source line
	End       int          // 1-based source line
	Params    *sitter.Node // parameter_list, may be nil
	ReturnTag *sitter.Node // the type node preceding the declarator
}

// Functions walks a translation unit and returns every function_definition
// in source order, skipping prototypes (declarations with no body).
func Functions(root *sitter.Node, source []byte) []Function {
	var out []Function
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			if fn, ok := describeFunction(n, source); ok {
				out = append(out, fn)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return out
}

func describeFunction(n *sitter.Node, source []byte) (Function, bool) {
	body := n.ChildByFieldName("body")
	if body == nil || body.Type() != "compound_statement" {
		return Function{}, false
	}
	declarator := n.ChildByFieldName("declarator")
	name := "unknown"
	var params *sitter.Node
	if declarator != nil {
		name = DeclaratorName(declarator, source)
		params = declaratorParams(declarator)
	}
	return Function{
		Name:      name,
		Node:      n,
		Body:      body,
		Start:     int(n.StartPoint().Row) + 1,
		End:       int(n.EndPoint().Row) + 1,
		Params:    params,
		ReturnTag: n.ChildByFieldName("type"),
	}, true
}

// DeclaratorName recovers the identifier bound by a C declarator, unwinding
// pointer_declarator and function_declarator wrappers such as the ones
// produced by `int *foo(...)` or `void (*bar)(int)`.
func DeclaratorName(n *sitter.Node, source []byte) string {
	cur := n
	for cur != nil {
		switch cur.Type() {
		case "identifier", "field_identifier":
			return cur.Content(source)
		case "pointer_declarator", "function_declarator", "array_declarator", "parenthesized_declarator":
			if inner := cur.ChildByFieldName("declarator"); inner != nil {
				cur = inner
				continue
			}
		}
		// Fall back to scanning named children for an inner declarator.
		var next *sitter.Node
		for i := 0; i < int(cur.NamedChildCount()); i++ {
			c := cur.NamedChild(i)
			if c.Type() == "identifier" || c.Type() == "field_identifier" {
				return c.Content(source)
			}
			if next == nil {
				next = c
			}
		}
		if next == nil || next == cur {
			break
		}
		cur = next
	}
	return "unknown"
}

func declaratorParams(n *sitter.Node) *sitter.Node {
	cur := n
	for cur != nil {
		if cur.Type() == "function_declarator" {
			return cur.ChildByFieldName("parameters")
		}
		inner := cur.ChildByFieldName("declarator")
		if inner == nil {
			return nil
		}
		cur = inner
	}
	return nil
}

// ParamCount counts parameter_declaration nodes in a parameter_list,
// returning 0 for a nil list and treating a lone `(void)` parameter as 0.
func ParamCount(params *sitter.Node, source []byte) int {
	if params == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		if p.Content(source) == "void" {
			continue
		}
		count++
	}
	return count
}
