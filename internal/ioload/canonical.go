package ioload

import (
	"context"
	"log/slog"

	"github.com/gnames/gntree/pkg/parserpool"
	"github.com/gnames/gntree/pkg/taxon"
	"golang.org/x/sync/errgroup"
)

// Canonicalize replaces names of records with their simple canonical
// forms, using jobsNum workers. Records keep their order, names that
// cannot be parsed stay as they are.
func Canonicalize(
	ctx context.Context,
	pool parserpool.Pool,
	recs []taxon.Record,
	jobsNum int,
) error {
	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].Name
	}
	err := CanonicalNames(ctx, pool, names, jobsNum)
	if err != nil {
		return err
	}
	for i := range recs {
		recs[i].Name = names[i]
	}
	return nil
}

// CanonicalNames replaces each name of the slice in place with its simple
// canonical form.
func CanonicalNames(
	ctx context.Context,
	pool parserpool.Pool,
	names []string,
	jobsNum int,
) error {
	if err := ctx.Err(); err != nil {
		return CanonicalError(err)
	}
	if jobsNum < 1 {
		jobsNum = 1
	}
	chIdx := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIdx)
		for i := range names {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIdx <- i:
			}
		}
		return nil
	})

	var failed int
	chFailed := make(chan int, jobsNum)
	for range jobsNum {
		g.Go(func() error {
			var count int
			for i := range chIdx {
				res, ok := pool.Canonical(names[i])
				if !ok {
					count++
					continue
				}
				names[i] = res
			}
			chFailed <- count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return CanonicalError(err)
	}
	close(chFailed)
	for v := range chFailed {
		failed += v
	}
	if failed > 0 {
		slog.Warn("Some names were not parsed, kept as is", "count", failed)
	}
	return nil
}
