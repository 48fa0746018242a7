package ast

// Inspect traverses the tree rooted at node in depth-first order, calling fn for
// every node. Children are skipped when fn returns false.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Group:
		inspectEntries(n.Properties, fn)
		inspectModifiers(&n.Modifiers, fn)

	case *Array:
		inspectEntries(n.Values, fn)
		inspectModifiers(&n.Modifiers, fn)

	case *Variable:
		inspectTypes(n.PropertyType, fn)
		inspectOperator(n.Operator, fn)

	case *Property:
		inspectTypes(n.Type, fn)
		inspectOperator(n.Operator, fn)

	case *Inclusion:
		inspectTypes(n.Type, fn)
		inspectOperator(n.Operator, fn)

	case *Choice:
		inspectEntries(n.Alternatives, fn)

	case *Operator:
		Inspect(n.Value, fn)

	case *Range:
		Inspect(n.Min, fn)
		Inspect(n.Max, fn)
		inspectModifiers(&n.Modifiers, fn)

	case *Tag:
		if n.TypePart != nil {
			Inspect(n.TypePart, fn)
		}
		inspectModifiers(&n.Modifiers, fn)

	case Type:
		inspectModifiers(n.Mods(), fn)
	}
}

func inspectEntries(entries []Entry, fn func(Node) bool) {
	for _, e := range entries {
		Inspect(e, fn)
	}
}

func inspectTypes(types []Type, fn func(Node) bool) {
	for _, t := range types {
		Inspect(t, fn)
	}
}

func inspectModifiers(m *Modifiers, fn func(Node) bool) {
	inspectOperator(m.Operator, fn)
}

func inspectOperator(op *Operator, fn func(Node) bool) {
	if op != nil {
		Inspect(op, fn)
	}
}
