// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := decodeConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, types.SourceSQLite, cfg.Source.Kind)
	assert.Equal(t, types.DefaultTable, cfg.Source.Table)
	assert.Equal(t, defaultDBPath, cfg.Source.Path)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Zero(t, cfg.HTTP.RateLimitRetries)
	assert.Equal(t, types.IDRandom, cfg.Catalog.IDStrategy)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDecodeConfigEnv(t *testing.T) {
	t.Setenv("PUBCATALOG_SOURCE_KIND", "PostgREST")
	t.Setenv("PUBCATALOG_SOURCE_URL", "https://xyz.supabase.co")
	t.Setenv("PUBCATALOG_HTTP_TIMEOUT", "5s")
	t.Setenv("PUBCATALOG_HTTP_RATE_LIMIT_RETRIES", "3")
	t.Setenv("PUBCATALOG_CATALOG_ID_STRATEGY", "stable")

	cfg, err := decodeConfig(newViper())
	require.NoError(t, err)

	assert.Equal(t, types.SourcePostgREST, cfg.Source.Kind)
	assert.Equal(t, "https://xyz.supabase.co", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.RateLimitRetries)
	assert.Equal(t, types.IDStable, cfg.Catalog.IDStrategy)
}

func TestDecodeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubcatalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  kind: file
  path: pubs.yaml
  table: papers
log:
  level: debug
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.SourceConfig{Kind: types.SourceFile, Table: "papers", Path: "pubs.yaml"}, cfg.Source)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDecodeConfigFileSourceNeedsPath(t *testing.T) {
	v := newViper()
	v.Set("source.kind", "file")

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Empty(t, cfg.Source.Path)

	_, _, err = newController(cfg, nil)
	assert.ErrorContains(t, err, "file source: path is required")
}

func TestDecodeConfigSQLiteKeepsExplicitPath(t *testing.T) {
	v := newViper()
	v.Set("source.path", "elsewhere.db")

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere.db", cfg.Source.Path)
}

func TestDecodeConfigInvalidIDStrategy(t *testing.T) {
	v := newViper()
	v.Set("catalog.id_strategy", "sequential")

	_, err := decodeConfig(v)
	assert.ErrorContains(t, err, "invalid catalog.id_strategy")
}

func TestNewControllerUnknownSource(t *testing.T) {
	cfg, err := decodeConfig(newViper())
	require.NoError(t, err)
	cfg.Source.Kind = "mongo"

	_, _, err = newController(cfg, nil)
	assert.Error(t, err)
}

func TestIngestDBPath(t *testing.T) {
	assert.Equal(t, "cat.db", ingestDBPath(types.SourceConfig{Kind: types.SourceSQLite, Path: "cat.db"}))
	assert.Equal(t, defaultDBPath, ingestDBPath(types.SourceConfig{Kind: types.SourceFile, Path: "pubs.yaml"}))
	assert.Equal(t, defaultDBPath, ingestDBPath(types.SourceConfig{Kind: types.SourceSQLite}))
}

func TestListSearchHelpNamesKeywords(t *testing.T) {
	assert.Contains(t, listCmd.Flags().Lookup("search").Usage, "title or keywords")
	assert.Contains(t, listCmd.Long, "title or\nkeywords contain the search text")
}
