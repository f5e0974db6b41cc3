package taxon

// Targets is a set of taxon names to keep during pruning.
type Targets map[string]struct{}

// NewTargets creates a set from names.
func NewTargets(names ...string) Targets {
	res := make(Targets, len(names))
	for _, v := range names {
		res[v] = struct{}{}
	}
	return res
}

// Has is true if name is in the set.
func (t Targets) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Prune returns a new tree that contains only the targets and their
// ancestors. A target node is kept as a leaf, its own descendants are
// dropped. Returns nil if no target is reachable from the node.
// The original tree is not modified.
func Prune(n *Node, targets Targets) *Node {
	if n == nil {
		return nil
	}
	if targets.Has(n.Name) {
		return &Node{Name: n.Name}
	}

	var children []*Node
	for _, c := range n.Children {
		if pc := Prune(c, targets); pc != nil {
			children = append(children, pc)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return &Node{Name: n.Name, Children: children}
}
