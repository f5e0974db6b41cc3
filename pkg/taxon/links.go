package taxon

// Links is an adjacency mapping from a parent name to its child names.
// Children keep the order of their first appearance, duplicates are ignored.
type Links struct {
	children map[string][]string
	seen     map[Edge]struct{}
	names    map[string]struct{}
}

// NewLinks creates an empty adjacency mapping.
func NewLinks() *Links {
	return &Links{
		children: make(map[string][]string),
		seen:     make(map[Edge]struct{}),
		names:    make(map[string]struct{}),
	}
}

// Add registers a parent/child relation.
func (l *Links) Add(parent, child string) {
	e := Edge{Parent: parent, Child: child}
	if _, ok := l.seen[e]; ok {
		return
	}
	l.seen[e] = struct{}{}
	l.children[parent] = append(l.children[parent], child)
	l.names[parent] = struct{}{}
	l.names[child] = struct{}{}
}

// Children returns child names of a parent in insertion order.
func (l *Links) Children(parent string) []string {
	return l.children[parent]
}

// HasParent is true if the name has at least one child.
func (l *Links) HasParent(name string) bool {
	_, ok := l.children[name]
	return ok
}

// Has is true if the name appears either as a parent or as a child.
func (l *Links) Has(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Len returns the number of parents in the mapping.
func (l *Links) Len() int {
	return len(l.children)
}

// EdgesNum returns the number of distinct relations.
func (l *Links) EdgesNum() int {
	return len(l.seen)
}
