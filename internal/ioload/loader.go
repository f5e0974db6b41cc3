// Package ioload reads taxonomic relations from pair lists, ColDP tables
// and SFGA archives and builds the tree below a requested root.
package ioload

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/gntree"
	"github.com/gnames/gntree/pkg/parserpool"
	"github.com/gnames/gntree/pkg/taxon"
)

type loader struct {
	cfg  *config.Config
	pool parserpool.Pool
}

// New creates a Loader for the source described in the config. If the
// config asks for canonical names, the pool must not be nil.
func New(cfg *config.Config, pool parserpool.Pool) (gntree.Loader, error) {
	switch cfg.Source.Format {
	case config.PairsFormat, config.ColDPFormat, config.SFGAFormat:
	default:
		return nil, UnknownFormatError(string(cfg.Source.Format))
	}
	return &loader{cfg: cfg, pool: pool}, nil
}

// Load reads the source and returns the tree rooted at the taxon with
// the given name.
func (l *loader) Load(ctx context.Context, root string) (*taxon.Node, error) {
	if l.cfg.Source.Format == config.PairsFormat {
		return l.loadPairs(root)
	}

	start := time.Now()
	recs, err := l.records(ctx)
	if err != nil {
		return nil, err
	}
	gn.Info("Loaded <em>%s</em> accepted records in %s",
		humanize.Comma(int64(len(recs))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)

	if l.cfg.WithCanonical && l.pool != nil {
		err = Canonicalize(ctx, l.pool, recs, l.cfg.JobsNumber)
		if err != nil {
			return nil, err
		}
	}

	forest, report := taxon.BuildForest(recs)
	if n := len(report.Orphans); n > 0 {
		gn.Warn("Skipped <em>%s</em> records without a path to a root",
			humanize.Comma(int64(n)))
		slog.Warn("Orphan records", "count", n, "ids", sample(report.Orphans))
	}
	if n := len(report.Circular); n > 0 {
		gn.Warn("Skipped <em>%s</em> records with circular parents",
			humanize.Comma(int64(n)))
		slog.Warn("Circular records", "count", n, "ids", sample(report.Circular))
	}

	res, ok := taxon.Find(forest, root)
	if !ok {
		return nil, RootNotFoundError(root)
	}
	return res, nil
}

func (l *loader) loadPairs(root string) (*taxon.Node, error) {
	path := l.cfg.Source.Path
	f, err := os.Open(path)
	if err != nil {
		return nil, SourceError(path, err)
	}
	defer f.Close()

	links, err := ReadPairs(f)
	if err != nil {
		return nil, err
	}
	slog.Info("Relations loaded", "parents", links.Len(), "edges", links.EdgesNum())

	if !links.Has(root) {
		return nil, RootNotFoundError(root)
	}
	return taxon.BuildTree(links, root), nil
}

func (l *loader) records(ctx context.Context) ([]taxon.Record, error) {
	path := l.cfg.Source.Path
	if l.cfg.Source.Format == config.SFGAFormat {
		dbPath, err := FetchSFGA(path, config.SFGACacheDir(l.cfg.HomeDir))
		if err != nil {
			return nil, err
		}
		db, err := OpenSFGA(dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return ReadSFGA(ctx, db)
	}
	return ReadColDP(ctx, path)
}

func sample(ids []string) []string {
	if len(ids) > 10 {
		return ids[:10]
	}
	return ids
}
