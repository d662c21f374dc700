package parser

// Inspect traverses the tree in pre-order (node, then operands left to
// right). If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Not:
		Inspect(n.X, f)
	case *And:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *Or:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *Paren:
		Inspect(n.X, f)
	}
}

// Variables returns the variable names used in n, in source order and
// without duplicates.
func Variables(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	Inspect(n, func(n Node) bool {
		if v, ok := n.(*Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	})
	return names
}
