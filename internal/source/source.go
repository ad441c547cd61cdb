// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches raw publication rows from a data store. Each
// backend (PostgREST, Postgres, SQLite, a YAML/JSON file) implements Source;
// the catalog controller depends only on the interface.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// Source returns the rows of a publication collection. Fetch is all or
// nothing: on error no rows are returned.
type Source interface {
	Name() string
	Fetch(ctx context.Context, table string, fields []string) ([]types.PublicationRecord, error)
}

// ErrUnknownKind is returned by New for an unsupported source kind.
var ErrUnknownKind = errors.New("unknown source kind")

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pubcatalog/0.1"
)

// New builds the Source selected by cfg.Kind.
func New(cfg types.SourceConfig, httpCfg types.HTTPConfig) (Source, error) {
	switch cfg.Kind {
	case types.SourcePostgREST:
		if cfg.URL == "" {
			return nil, fmt.Errorf("postgrest source: url is required")
		}
		timeout := httpCfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		if httpCfg.UserAgent == "" {
			httpCfg.UserAgent = defaultUserAgent
		}
		return &PostgRESTSource{
			Client:  &http.Client{Timeout: timeout},
			BaseURL: cfg.URL,
			APIKey:  cfg.APIKey,
			HTTP:    httpCfg,
		}, nil
	case types.SourcePostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres source: dsn is required")
		}
		return &PostgresSource{DSN: cfg.DSN}, nil
	case types.SourceSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite source: path is required")
		}
		return &SQLiteSource{Path: cfg.Path}, nil
	case types.SourceFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source: path is required")
		}
		return &FileSource{Path: cfg.Path}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use postgrest, postgres, sqlite, or file)", ErrUnknownKind, cfg.Kind)
	}
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// splitIdent validates a possibly schema-qualified name ("public.publications")
// and returns its parts.
func splitIdent(name string) ([]string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid identifier %q", name)
	}
	for _, p := range parts {
		if !identPattern.MatchString(p) {
			return nil, fmt.Errorf("invalid identifier %q", name)
		}
	}
	return parts, nil
}

// quoteIdent validates name and double-quotes each part for use in SQL.
func quoteIdent(name string) (string, error) {
	parts, err := splitIdent(name)
	if err != nil {
		return "", err
	}
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, "."), nil
}

func tableOrDefault(table string) string {
	if table == "" {
		return types.DefaultTable
	}
	return table
}
