package ioload

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnfmt/gncsv"
	csvConfig "github.com/gnames/gnfmt/gncsv/config"
	"github.com/gnames/gntree/pkg/taxon"
	"github.com/sfborg/sflib/pkg/coldp"
	"golang.org/x/sync/errgroup"
)

const (
	colID     = "id"
	colParent = "parentid"
	colName   = "scientificname"
	colStatus = "status"
	colRank   = "rank"
)

var requiredCols = []string{colID, colParent, colName, colStatus}

// ReadColDP reads a tab-delimited ColDP NameUsage table. Quotes are not
// special. Header names may carry a namespace prefix ("col:ID") and are
// compared case-insensitively, DarwinCore names ("taxonID",
// "parentNameUsageID", "taxonRank") are accepted too. Only accepted and
// provisionally accepted records are returned, in the order of the table.
func ReadColDP(ctx context.Context, path string) ([]taxon.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, SourceError(path, err)
	}

	cfg, err := csvConfig.New(
		csvConfig.OptPath(path),
		csvConfig.OptColSep('\t'),
		csvConfig.OptWithQuotes(false),
		csvConfig.OptBadRowMode(gnfmt.ProcessBadRow),
	)
	if errors.Is(err, csvConfig.ErrEmptyFirstLine) {
		return nil, HeaderError(requiredCols)
	}
	if err != nil {
		return nil, SourceError(path, err)
	}

	headers, err := columns(cfg.Headers)
	if err != nil {
		return nil, err
	}

	ch := make(chan []string)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		_, err := gncsv.New(cfg).Read(ctx, ch)
		return err
	})

	var res []taxon.Record
	g.Go(func() error {
		for row := range ch {
			if rec, ok := record(headers, row); ok {
				res = append(res, rec)
			}
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, SourceError(path, err)
	}
	return res, nil
}

// columns converts header names into the names NameUsage fields are
// loaded from and checks that required columns are present.
func columns(header []string) ([]string, error) {
	res := make([]string, len(header))
	for i, v := range header {
		v = strings.TrimPrefix(v, "\ufeff")
		v = strings.ToLower(strings.TrimSpace(v))
		if _, name, ok := strings.Cut(v, ":"); ok {
			v = name
		}
		res[i] = v
	}

	idx := coldp.NormalizeHeaders(res)
	var missing []string
	for _, v := range requiredCols {
		i, ok := idx[v]
		if !ok {
			missing = append(missing, v)
			continue
		}
		res[i] = v
	}
	if len(missing) > 0 {
		return nil, HeaderError(missing)
	}
	if i, ok := idx[colRank]; ok {
		res[i] = colRank
	}
	return res, nil
}

func record(headers, row []string) (taxon.Record, bool) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	var nu coldp.NameUsage
	dl, _ := nu.Load(headers, row)
	nu = dl.(coldp.NameUsage)

	status := statusOf(nu.TaxonomicStatus)
	if !status.IsAccepted() {
		return taxon.Record{}, false
	}
	return taxon.Record{
		ID:       nu.ID,
		ParentID: nu.ParentID,
		Name:     nu.ScientificName,
		Rank:     rankOf(nu.Rank),
		Status:   status,
	}, true
}

// ParseStatus converts taxonomic status values of ColDP tables
// ("provisionally accepted") and SFGA archives ("PROVISIONALLY_ACCEPTED").
func ParseStatus(s string) taxon.Status {
	return statusOf(coldp.NewTaxonomicStatus(strings.TrimSpace(s)))
}

func statusOf(ts coldp.TaxonomicStatus) taxon.Status {
	switch ts {
	case coldp.AcceptedTS:
		return taxon.Accepted
	case coldp.ProvisionallyAcceptedTS:
		return taxon.ProvisionallyAccepted
	case coldp.SynonymTS, coldp.AmbiguousSynonymTS, coldp.MisappliedTS:
		return taxon.Synonym
	default:
		return taxon.UnknownStatus
	}
}

// rankOf returns the lowercase name of a known rank, empty otherwise.
func rankOf(r coldp.Rank) string {
	if r == coldp.UnknownRank || r == coldp.Unranked {
		return ""
	}
	return r.String()
}
