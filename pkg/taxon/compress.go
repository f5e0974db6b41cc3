package taxon

// Compress returns a new tree where runs of single-child ranks are
// collapsed into composite labels joined by Separator.
//
// A node X with exactly one child Y is replaced by a node named
// "X → Y" that takes the children of Y, but only if Y is not a leaf.
// Merging repeats on the same level until nothing changes, then
// continues into every child. Leaves always keep their own entries.
func Compress(n *Node) *Node {
	if n == nil {
		return nil
	}
	return compressLevel([]*Node{n})[0]
}

func compressLevel(level []*Node) []*Node {
	res := make([]*Node, len(level))
	for i, n := range level {
		res[i] = mergeChain(n)
	}
	for i, n := range res {
		res[i] = &Node{Name: n.Name, Children: compressLevel(n.Children)}
		if len(n.Children) == 0 {
			res[i].Children = nil
		}
	}
	return res
}

// mergeChain merges a node with its only non-leaf child until a
// fixpoint is reached.
func mergeChain(n *Node) *Node {
	for len(n.Children) == 1 && !n.Children[0].IsLeaf() {
		child := n.Children[0]
		n = &Node{
			Name:     n.Name + Separator + child.Name,
			Children: child.Children,
		}
	}
	return n
}
