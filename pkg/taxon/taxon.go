// Package taxon provides the tree model of gntree and the pure
// transformations applied to it: building trees from flat relation data,
// locating subtrees, pruning to target taxa and compressing chains of
// single-child ranks.
//
// This package has no I/O dependencies.
package taxon

// Separator joins names of collapsed ranks into one composite label.
const Separator = " → "

// Status is a taxonomic status of a record.
type Status int

const (
	UnknownStatus Status = iota
	Accepted
	ProvisionallyAccepted
	Synonym
)

var statusStr = map[Status]string{
	UnknownStatus:         "unknown",
	Accepted:              "accepted",
	ProvisionallyAccepted: "provisionally accepted",
	Synonym:               "synonym",
}

// String returns the ColDP form of the status.
func (s Status) String() string {
	return statusStr[s]
}

// IsAccepted is true for statuses that survive into the working set.
func (s Status) IsAccepted() bool {
	return s == Accepted || s == ProvisionallyAccepted
}

// Record is a parent-id annotated taxon from a bulk taxonomy export.
type Record struct {
	// ID is a dataset-native identifier of the taxon.
	ID string
	// ParentID is the ID of the parent taxon, empty for roots.
	ParentID string
	// Name is the scientific name of the taxon.
	Name string
	// Rank is a lowercase rank, if the source provides it.
	Rank   string
	Status Status
}

// Node is a taxon in a tree. Leaves have no children.
type Node struct {
	Name     string  `json:"name"               yaml:"name"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Forest is an ordered collection of independently rooted trees.
type Forest []*Node

// IsLeaf is true when the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Edge is a parent/child relation between two named nodes.
type Edge struct {
	Parent string
	Child  string
}

// Edges returns parent/child relations of the tree in pre-order.
func Edges(n *Node) []Edge {
	var res []Edge
	if n == nil {
		return res
	}
	for _, c := range n.Children {
		res = append(res, Edge{Parent: n.Name, Child: c.Name})
		res = append(res, Edges(c)...)
	}
	return res
}

// Leaves returns names of the leaves of the tree in pre-order.
func Leaves(n *Node) []string {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []string{n.Name}
	}
	var res []string
	for _, c := range n.Children {
		res = append(res, Leaves(c)...)
	}
	return res
}

// Size returns the number of nodes in the tree.
func Size(n *Node) int {
	if n == nil {
		return 0
	}
	res := 1
	for _, c := range n.Children {
		res += Size(c)
	}
	return res
}
