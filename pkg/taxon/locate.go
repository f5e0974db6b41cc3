package taxon

// Find searches the forest depth-first, root first and children in
// order, and returns the first node with exactly the given name.
func Find(forest Forest, name string) (*Node, bool) {
	for _, tree := range forest {
		if res, ok := FindInTree(tree, name); ok {
			return res, true
		}
	}
	return nil, false
}

// FindInTree is Find for a single tree.
func FindInTree(n *Node, name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.Name == name {
		return n, true
	}
	for _, c := range n.Children {
		if res, ok := FindInTree(c, name); ok {
			return res, true
		}
	}
	return nil, false
}
