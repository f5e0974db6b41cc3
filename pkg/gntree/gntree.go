// Package gntree connects the steps of building a display tree: loading a
// subtree, pruning it to target taxa and compressing chains of single-child
// ranks.
package gntree

import (
	"context"

	"github.com/gnames/gntree/pkg/taxon"
)

// Loader finds the tree below a root taxon in a relation source.
type Loader interface {
	// Load returns the tree rooted at the taxon with the given name.
	// An absent root is an error.
	Load(ctx context.Context, root string) (*taxon.Node, error)
}

// Options modify the tree after it is loaded.
type Options struct {
	// Targets restrict the tree to their ancestors. Empty Targets keep
	// the whole tree.
	Targets taxon.Targets
	// WithoutCompression keeps single-child chains as separate levels.
	WithoutCompression bool
}

// Tree loads the tree below root and transforms it according to opts.
// The result is nil if none of the targets is under the root.
func Tree(
	ctx context.Context,
	l Loader,
	root string,
	opts Options,
) (*taxon.Node, error) {
	res, err := l.Load(ctx, root)
	if err != nil {
		return nil, err
	}

	if len(opts.Targets) > 0 {
		res = taxon.Prune(res, opts.Targets)
		if res == nil {
			return nil, nil
		}
	}

	if !opts.WithoutCompression {
		res = taxon.Compress(res)
	}
	return res, nil
}
