package ioload

import (
	"context"
	"database/sql"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gntree/pkg/taxon"
	"github.com/sfborg/sflib"
	"github.com/sfborg/sflib/pkg/coldp"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// FetchSFGA downloads (if src is a URL) and extracts an SFGA archive into
// cacheDir. The src can be a .sql, .sqlite file or their zipped versions.
// It returns the path to the SQLite database.
func FetchSFGA(src, cacheDir string) (string, error) {
	arc := sflib.NewSfga()
	err := arc.Fetch(src, cacheDir)
	if err != nil {
		return "", SFGAFetchError(src, err)
	}

	res := arc.DbPath()
	if res == "" {
		return "", SFGAFetchError(src, os.ErrNotExist)
	}
	return res, nil
}

// OpenSFGA opens an SFGA SQLite database.
func OpenSFGA(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, SFGAOpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SFGAOpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, SFGAOpenError(path, err)
	}
	return db, nil
}

// ReadSFGA reads accepted taxa of an SFGA database in the order of the
// taxon table.
func ReadSFGA(ctx context.Context, db *sql.DB) ([]taxon.Record, error) {
	var total int64
	err := db.QueryRowContext(ctx, "SELECT count(*) FROM taxon").Scan(&total)
	if err != nil {
		return nil, SFGAReadError(err)
	}
	var bar *pb.ProgressBar
	if total >= minProgressRows {
		bar = newProgressBar(total, "SFGA ")
		defer bar.Finish()
	}

	query := `
		SELECT t.col__id, t.col__parent_id, t.col__status_id,
		       n.col__scientific_name, n.col__rank_id
		FROM taxon t
		JOIN name n ON n.col__id = t.col__name_id
		ORDER BY t.rowid
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, SFGAReadError(err)
	}
	defer rows.Close()

	var res []taxon.Record
	for rows.Next() {
		var id, name string
		var parentID, status, rank sql.NullString
		err = rows.Scan(&id, &parentID, &status, &name, &rank)
		if err != nil {
			return nil, SFGAReadError(err)
		}
		if bar != nil {
			bar.Increment()
		}

		st := ParseStatus(status.String)
		if !st.IsAccepted() {
			continue
		}
		res = append(res, taxon.Record{
			ID:       id,
			ParentID: parentID.String,
			Name:     name,
			Rank:     rankOf(coldp.NewRank(rank.String)),
			Status:   st,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, SFGAReadError(err)
	}
	return res, nil
}
