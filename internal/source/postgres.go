// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// PostgresSource reads rows directly from Postgres with pgx.
//
// The id column is cast to text so uuid, serial and text keys all arrive as
// strings. Other columns keep their native decoding: a text[] keywords
// column arrives as a list, a text column as a delimited string.
type PostgresSource struct {
	DSN string
}

// Name returns the backend identifier.
func (s *PostgresSource) Name() string { return "postgres" }

// Fetch opens a connection, runs one SELECT, and closes the connection.
func (s *PostgresSource) Fetch(ctx context.Context, table string, fields []string) ([]types.PublicationRecord, error) {
	query, err := buildPostgresQuery(tableOrDefault(table), fields)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying postgres: %w", err)
	}
	defer rows.Close()

	var records []types.PublicationRecord
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		records = append(records, recordFromValues(fields, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}

// buildPostgresQuery returns the SELECT for fields from table with every
// identifier sanitized.
func buildPostgresQuery(table string, fields []string) (string, error) {
	parts, err := splitIdent(table)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("no fields requested")
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		if _, err := splitIdent(f); err != nil {
			return "", err
		}
		col := pgx.Identifier{f}.Sanitize()
		if f == types.FieldID {
			col += "::text"
		}
		cols[i] = col
	}

	return "SELECT " + strings.Join(cols, ", ") + " FROM " + pgx.Identifier(parts).Sanitize(), nil
}

// recordFromValues maps a positional row onto a PublicationRecord.
func recordFromValues(fields []string, values []any) types.PublicationRecord {
	row := make(map[string]any, len(fields))
	for i, f := range fields {
		if i < len(values) {
			row[f] = values[i]
		}
	}
	return types.RecordFromMap(row)
}
