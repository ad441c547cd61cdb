// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest imports publication rows from CSV, JSON or YAML files into
// a local SQLite catalog that the sqlite source can serve.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pub-catalog/internal/catalog"
	"github.com/pdiddy/pub-catalog/internal/source"
)

// keywordSep splits keyword cells in CSV input and keyword strings in
// JSON/YAML input.
const keywordSep = ";"

// Summary holds counts from one import run.
type Summary struct {
	Imported int
	Skipped  int
	Failed   int
}

// Total returns the number of rows processed.
func (s Summary) Total() int {
	return s.Imported + s.Skipped + s.Failed
}

// Importer writes rows into a catalog database.
type Importer struct {
	db *sql.DB
}

// NewImporter opens or creates the catalog database at dbPath.
func NewImporter(dbPath string) (*Importer, error) {
	db, err := source.OpenCatalogDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Importer{db: db}, nil
}

// Close releases the database connection.
func (im *Importer) Close() error {
	return im.db.Close()
}

// row is one publication ready to store.
type row struct {
	ID       string
	Title    string
	Link     string
	Keywords []string
}

// ImportFile reads path and upserts every row that has both a title and a
// link. Rows without an id get a stable id derived from title and link.
// Progress lines go to w.
func (im *Importer) ImportFile(ctx context.Context, path string, w io.Writer) (Summary, error) {
	rows, err := readRows(path)
	if err != nil {
		return Summary{}, err
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (id, title, keywords, link) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, keywords=excluded.keywords, link=excluded.link`)
	if err != nil {
		return Summary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary Summary
	for i, r := range rows {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if r.Title == "" || r.Link == "" {
			fmt.Fprintf(w, "skipped row %d: missing title or link\n", i+1)
			summary.Skipped++
			continue
		}
		if r.ID == "" {
			r.ID = catalog.StableID(r.Title, r.Link)
		}

		kws, err := source.EncodeKeywords(r.Keywords)
		if err != nil {
			fmt.Fprintf(w, "failed  row %d: %v\n", i+1, err)
			summary.Failed++
			continue
		}

		if _, err := stmt.ExecContext(ctx, r.ID, r.Title, kws, r.Link); err != nil {
			fmt.Fprintf(w, "failed  row %d: %v\n", i+1, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "imported %s\n", r.Title)
		summary.Imported++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "\nimported: %d, skipped: %d, failed: %d\n",
		summary.Imported, summary.Skipped, summary.Failed)
	return summary, nil
}

// readRows dispatches on the file extension.
func readRows(path string) ([]row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(data)
	case ".json", ".yaml", ".yml":
		maps, err := source.DecodeRows(data, path)
		if err != nil {
			return nil, err
		}
		rows := make([]row, len(maps))
		for i, m := range maps {
			rows[i] = rowFromMap(m)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q: use .csv, .json, .yaml or .yml", filepath.Ext(path))
	}
}
