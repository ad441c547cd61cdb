// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// SQLiteSource reads rows from a local catalog database. A keywords cell
// holding a JSON array is returned as a list; any other text is returned
// as-is for the normalizer to split.
type SQLiteSource struct {
	Path string
}

// Name returns the backend identifier.
func (s *SQLiteSource) Name() string { return "sqlite" }

// Fetch opens the database read-only and selects fields from table. A
// missing database file is an error rather than an empty catalog.
func (s *SQLiteSource) Fetch(ctx context.Context, table string, fields []string) ([]types.PublicationRecord, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", s.Path, err)
	}

	query, err := buildSelect(tableOrDefault(table), fields)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []types.PublicationRecord
	for rows.Next() {
		cells := make([]sql.NullString, len(fields))
		dest := make([]any, len(fields))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(fields))
		for i, f := range fields {
			if !cells[i].Valid {
				continue
			}
			if f == types.FieldKeywords {
				row[f] = keywordsCell(cells[i].String)
			} else {
				row[f] = cells[i].String
			}
		}
		records = append(records, types.RecordFromMap(row))
	}
	return records, rows.Err()
}

// keywordsCell decodes a JSON array cell into a list. Cells that are not
// a JSON array of strings stay strings.
func keywordsCell(cell string) any {
	if !strings.HasPrefix(strings.TrimSpace(cell), "[") {
		return cell
	}
	var list []string
	if err := json.Unmarshal([]byte(cell), &list); err != nil {
		return cell
	}
	out := make([]any, len(list))
	for i, k := range list {
		out[i] = k
	}
	return out
}

// EncodeKeywords renders keywords as the JSON array cell read back by
// keywordsCell. An empty list is stored as NULL.
func EncodeKeywords(kws []string) (sql.NullString, error) {
	if len(kws) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(kws)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding keywords: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func buildSelect(table string, fields []string) (string, error) {
	from, err := quoteIdent(table)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("no fields requested")
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		if cols[i], err = quoteIdent(f); err != nil {
			return "", err
		}
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + from, nil
}

// OpenCatalogDB opens or creates a writable catalog database at path and
// ensures the publications table exists.
func OpenCatalogDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS publications (
		id TEXT PRIMARY KEY,
		title TEXT,
		keywords TEXT,
		link TEXT
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}
