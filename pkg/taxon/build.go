package taxon

// BuildTree creates a tree rooted at start from an adjacency mapping.
// A name that has no children in links becomes a leaf. A child that
// already appears on the path from start to its parent would create a
// cycle and is skipped.
func BuildTree(links *Links, start string) *Node {
	return buildTree(links, start, make(map[string]struct{}))
}

func buildTree(links *Links, name string, path map[string]struct{}) *Node {
	res := &Node{Name: name}
	path[name] = struct{}{}
	for _, child := range links.Children(name) {
		if _, ok := path[child]; ok {
			continue
		}
		res.Children = append(res.Children, buildTree(links, child, path))
	}
	delete(path, name)
	return res
}

type badNodeType int

const (
	rootedNode badNodeType = iota
	missingBadNode
	circularBadNode
)

// Report lists records that could not be attached to any root.
type Report struct {
	// Orphans are IDs of records whose chain of parents reaches an ID
	// that is not among the records.
	Orphans []string
	// Circular are IDs of records whose chain of parents loops back
	// on itself.
	Circular []string
}

// BuildForest links records into a forest using parent IDs.
//
// Records with an empty parent ID, or with a parent ID pointing to
// themselves, become roots. Children follow the order of records.
// If several records share an ID, the first one wins.
// Records that cannot reach a root, either because an ancestor is
// missing or because ancestors form a cycle, are dropped together
// with their descendants and listed in the Report.
func BuildForest(recs []Record) (Forest, Report) {
	var report Report
	byID := make(map[string]*Record, len(recs))
	order := make([]string, 0, len(recs))
	for i := range recs {
		id := recs[i].ID
		if id == "" {
			continue
		}
		if _, ok := byID[id]; ok {
			continue
		}
		byID[id] = &recs[i]
		order = append(order, id)
	}

	states := make(map[string]badNodeType, len(order))
	for _, id := range order {
		classify(id, byID, states)
	}

	nodes := make(map[string]*Node, len(order))
	for _, id := range order {
		switch states[id] {
		case rootedNode:
			nodes[id] = &Node{Name: byID[id].Name}
		case missingBadNode:
			report.Orphans = append(report.Orphans, id)
		case circularBadNode:
			report.Circular = append(report.Circular, id)
		}
	}

	var res Forest
	for _, id := range order {
		node, ok := nodes[id]
		if !ok {
			continue
		}
		parentID := parentOf(byID[id])
		if parentID == "" {
			res = append(res, node)
			continue
		}
		parent := nodes[parentID]
		parent.Children = append(parent.Children, node)
	}
	return res, report
}

func parentOf(r *Record) string {
	if r.ParentID == r.ID {
		return ""
	}
	return r.ParentID
}

// classify walks up the chain of parents of id and assigns the same
// state to every record on the walked path.
func classify(
	id string,
	byID map[string]*Record,
	states map[string]badNodeType,
) {
	var path []string
	onPath := make(map[string]struct{})
	state := rootedNode

	cur := id
	for {
		if st, ok := states[cur]; ok {
			state = st
			break
		}
		if _, ok := onPath[cur]; ok {
			state = circularBadNode
			break
		}
		rec, ok := byID[cur]
		if !ok {
			state = missingBadNode
			break
		}
		onPath[cur] = struct{}{}
		path = append(path, cur)

		parentID := parentOf(rec)
		if parentID == "" {
			break
		}
		cur = parentID
	}

	for _, v := range path {
		states[v] = state
	}
}
