// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// FileSource reads rows from a YAML or JSON file holding a list of objects.
// Files ending in .json are decoded as JSON, everything else as YAML.
type FileSource struct {
	Path string
}

// Name returns the backend identifier.
func (s *FileSource) Name() string { return "file" }

// Fetch reads the whole file. The table argument is ignored; fields not in
// the requested set are dropped.
func (s *FileSource) Fetch(ctx context.Context, _ string, fields []string) ([]types.PublicationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	rows, err := DecodeRows(data, s.Path)
	if err != nil {
		return nil, err
	}

	records := make([]types.PublicationRecord, len(rows))
	for i, row := range rows {
		records[i] = types.RecordFromMap(pick(row, fields))
	}
	return records, nil
}

// DecodeRows parses a JSON or YAML list of objects, choosing the format by
// the extension of name.
func DecodeRows(data []byte, name string) ([]map[string]any, error) {
	var rows []map[string]any
	if strings.EqualFold(filepath.Ext(name), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return rows, nil
	}
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return rows, nil
}

func pick(row map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := row[f]; ok {
			out[f] = v
		}
	}
	return out
}
