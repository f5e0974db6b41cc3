package taxon_test

import (
	"testing"

	"github.com/gnames/gntree/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(name string, children ...*taxon.Node) *taxon.Node {
	return &taxon.Node{Name: name, Children: children}
}

func linksFrom(pairs ...[2]string) *taxon.Links {
	res := taxon.NewLinks()
	for _, v := range pairs {
		res.Add(v[0], v[1])
	}
	return res
}

func TestLinks(t *testing.T) {
	l := linksFrom(
		[2]string{"A", "B"},
		[2]string{"A", "C"},
		[2]string{"A", "B"},
		[2]string{"B", "D"},
	)
	assert.Equal(t, []string{"B", "C"}, l.Children("A"))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.EdgesNum())
	assert.True(t, l.HasParent("B"))
	assert.False(t, l.HasParent("D"))
	assert.True(t, l.Has("D"))
	assert.False(t, l.Has("E"))
}

func TestBuildTree(t *testing.T) {
	l := linksFrom(
		[2]string{"A", "B"},
		[2]string{"B", "C"},
		[2]string{"B", "D"},
	)
	res := taxon.BuildTree(l, "A")
	assert.Equal(t, node("A", node("B", node("C"), node("D"))), res)

	t.Run("unknown start is a leaf", func(t *testing.T) {
		res := taxon.BuildTree(l, "Z")
		assert.Equal(t, node("Z"), res)
	})

	t.Run("cycle is broken at first repeat", func(t *testing.T) {
		l := linksFrom(
			[2]string{"A", "B"},
			[2]string{"B", "C"},
			[2]string{"C", "A"},
		)
		res := taxon.BuildTree(l, "A")
		assert.Equal(t, node("A", node("B", node("C"))), res)
	})
}

func TestBuildTreeRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"Animalia", "Chordata"},
		{"Chordata", "Mammalia"},
		{"Chordata", "Aves"},
		{"Mammalia", "Carnivora"},
		{"Carnivora", "Felidae"},
		{"Felidae", "Panthera leo"},
		{"Felidae", "Felis catus"},
		{"Aves", "Passeriformes"},
	}
	l := linksFrom(pairs...)
	tree := taxon.BuildTree(l, "Animalia")

	var want []taxon.Edge
	for _, v := range pairs {
		want = append(want, taxon.Edge{Parent: v[0], Child: v[1]})
	}
	assert.ElementsMatch(t, want, taxon.Edges(tree))
	assert.Equal(t, len(pairs)+1, taxon.Size(tree))
}

func TestBuildForest(t *testing.T) {
	recs := []taxon.Record{
		{ID: "1", Name: "Plantae"},
		{ID: "2", ParentID: "1", Name: "Rosaceae"},
		{ID: "3", ParentID: "2", Name: "Rosa"},
		{ID: "4", Name: "Animalia"},
		{ID: "5", ParentID: "2", Name: "Prunus"},
		{ID: "6", ParentID: "6", Name: "Fungi"},
	}
	forest, report := taxon.BuildForest(recs)
	require.Len(t, forest, 3)
	assert.Equal(t,
		node("Plantae", node("Rosaceae", node("Rosa"), node("Prunus"))),
		forest[0],
	)
	assert.Equal(t, node("Animalia"), forest[1])
	assert.Equal(t, node("Fungi"), forest[2])
	assert.Empty(t, report.Orphans)
	assert.Empty(t, report.Circular)
}

func TestBuildForestBadNodes(t *testing.T) {
	recs := []taxon.Record{
		{ID: "1", Name: "Plantae"},
		{ID: "2", ParentID: "1", Name: "Rosaceae"},
		// parent 99 is not among the records
		{ID: "3", ParentID: "99", Name: "Orphanus"},
		{ID: "4", ParentID: "3", Name: "Orphanus minor"},
		// 5 -> 6 -> 7 -> 5
		{ID: "5", ParentID: "7", Name: "Cyclus"},
		{ID: "6", ParentID: "5", Name: "Cyclus a"},
		{ID: "7", ParentID: "6", Name: "Cyclus b"},
		{ID: "8", ParentID: "6", Name: "Cyclus b c"},
		// duplicate ID, ignored
		{ID: "2", ParentID: "1", Name: "Duplicatus"},
	}
	forest, report := taxon.BuildForest(recs)
	require.Len(t, forest, 1)
	assert.Equal(t, node("Plantae", node("Rosaceae")), forest[0])
	assert.Equal(t, []string{"3", "4"}, report.Orphans)
	assert.Equal(t, []string{"5", "6", "7", "8"}, report.Circular)
}

func TestFind(t *testing.T) {
	forest := taxon.Forest{
		node("Plantae", node("Rosaceae", node("Rosa"))),
		node("Animalia",
			node("Chordata", node("Rosa")),
			node("Arthropoda"),
		),
	}

	tests := []struct {
		msg   string
		name  string
		found bool
		root  *taxon.Node
	}{
		{"root", "Animalia", true, forest[1]},
		{"nested", "Arthropoda", true, forest[1].Children[1]},
		{"first match wins", "Rosa", true,
			forest[0].Children[0].Children[0]},
		{"absent", "Fungi", false, nil},
		{"case sensitive", "rosa", false, nil},
	}

	for _, v := range tests {
		res, ok := taxon.Find(forest, v.name)
		assert.Equal(t, v.found, ok, v.msg)
		assert.Same(t, v.root, res, v.msg)
	}
}

func TestPrune(t *testing.T) {
	tree := node("A", node("B", node("D"), node("E")), node("C"))

	t.Run("keeps ancestors of targets", func(t *testing.T) {
		res := taxon.Prune(tree, taxon.NewTargets("D"))
		assert.Equal(t, node("A", node("B", node("D"))), res)
	})

	t.Run("target descendants are dropped", func(t *testing.T) {
		res := taxon.Prune(tree, taxon.NewTargets("B", "C"))
		assert.Equal(t, node("A", node("B"), node("C")), res)
	})

	t.Run("root as target", func(t *testing.T) {
		res := taxon.Prune(tree, taxon.NewTargets("A"))
		assert.Equal(t, node("A"), res)
	})

	t.Run("no targets reachable", func(t *testing.T) {
		res := taxon.Prune(tree, taxon.NewTargets("Z"))
		assert.Nil(t, res)
		assert.Nil(t, taxon.Prune(nil, taxon.NewTargets("A")))
	})

	t.Run("original tree is intact", func(t *testing.T) {
		taxon.Prune(tree, taxon.NewTargets("D"))
		assert.Equal(t, 5, taxon.Size(tree))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, targets := range []taxon.Targets{
			taxon.NewTargets("D"),
			taxon.NewTargets("D", "C"),
			taxon.NewTargets("B", "E"),
		} {
			once := taxon.Prune(tree, targets)
			assert.Equal(t, once, taxon.Prune(once, targets))
		}
	})

	t.Run("preserves ancestry", func(t *testing.T) {
		targets := taxon.NewTargets("E", "C")
		res := taxon.Prune(tree, targets)
		require.NotNil(t, res)
		var check func(n *taxon.Node) bool
		check = func(n *taxon.Node) bool {
			if targets.Has(n.Name) {
				return true
			}
			if n.IsLeaf() {
				return false
			}
			for _, c := range n.Children {
				if !check(c) {
					return false
				}
			}
			return true
		}
		assert.True(t, check(res))
		assert.ElementsMatch(t, []string{"E", "C"}, taxon.Leaves(res))
	})
}

func TestCompress(t *testing.T) {
	tests := []struct {
		msg  string
		tree *taxon.Node
		res  *taxon.Node
	}{
		{
			msg:  "branching child stops the chain",
			tree: node("A", node("B", node("C"), node("D"))),
			res:  node("A → B", node("C"), node("D")),
		},
		{
			msg:  "two-node chain merges above its leaf",
			tree: node("A", node("B", node("C"))),
			res:  node("A → B", node("C")),
		},
		{
			msg:  "single leaf child is not merged",
			tree: node("A", node("B")),
			res:  node("A", node("B")),
		},
		{
			msg:  "leaf",
			tree: node("A"),
			res:  node("A"),
		},
		{
			msg: "long chain",
			tree: node("Animalia", node("Chordata", node("Mammalia",
				node("Carnivora", node("Felidae",
					node("Panthera leo"), node("Felis catus")))))),
			res: node("Animalia → Chordata → Mammalia → Carnivora → Felidae",
				node("Panthera leo"), node("Felis catus")),
		},
		{
			msg: "nested chains",
			tree: node("A",
				node("B", node("C", node("D", node("E")))),
				node("F", node("G")),
			),
			res: node("A",
				node("B → C → D", node("E")),
				node("F", node("G")),
			),
		},
	}

	for _, v := range tests {
		res := taxon.Compress(v.tree)
		assert.Equal(t, v.res, res, v.msg)
		assert.Equal(t, res, taxon.Compress(res), v.msg+": idempotent")
		assert.Equal(t, taxon.Leaves(v.tree), taxon.Leaves(res),
			v.msg+": leaves")
	}
	assert.Nil(t, taxon.Compress(nil))
}

func TestCompressDoesNotModifyInput(t *testing.T) {
	tree := node("A", node("B", node("C")))
	taxon.Compress(tree)
	assert.Equal(t, node("A", node("B", node("C"))), tree)
}

func TestCompressAfterPrune(t *testing.T) {
	l := linksFrom(
		[2]string{"A", "B"},
		[2]string{"A", "X"},
		[2]string{"B", "C"},
		[2]string{"C", "D"},
		[2]string{"C", "E"},
	)
	tree := taxon.BuildTree(l, "A")
	res := taxon.Compress(taxon.Prune(tree, taxon.NewTargets("D", "E")))
	assert.Equal(t, node("A → B → C", node("D"), node("E")), res)
}
