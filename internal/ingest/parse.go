// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// parseCSV reads a CSV export whose header names title and link columns in
// any case (e.g. "Title", "Link"). Optional columns: id, keywords.
func parseCSV(data []byte) ([]row, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("CSV header has no title column: %v", header)
	}

	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		rows = append(rows, row{
			ID:       cell(rec, "id"),
			Title:    cell(rec, "title"),
			Link:     cell(rec, "link"),
			Keywords: splitKeywords(cell(rec, "keywords")),
		})
	}
	return rows, nil
}

// rowFromMap converts a decoded JSON/YAML object. Keys are matched
// case-insensitively; keywords may be a list or a ";"-separated string.
func rowFromMap(m map[string]any) row {
	lower := make(map[string]any, len(m))
	for k, v := range m {
		lower[strings.ToLower(k)] = v
	}

	str := func(key string) string {
		v, ok := lower[key]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}

	r := row{ID: str("id"), Title: str("title"), Link: str("link")}
	switch kws := lower["keywords"].(type) {
	case string:
		r.Keywords = splitKeywords(kws)
	case []any:
		for _, k := range kws {
			if k == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(k)); s != "" {
				r.Keywords = append(r.Keywords, s)
			}
		}
	}
	return r
}

func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, keywordSep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
