// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "supabase-key", "  eyJhbGciOi  \n")
				writeFile(t, dir, "database-url", "postgres://u:p@db:5432/nasa\n")
				return dir
			},
			want: map[string]string{
				"supabase-key": "eyJhbGciOi",
				"database-url": "postgres://u:p@db:5432/nasa",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "supabase-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{"supabase-key": "valid-key"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "database-url", "postgres://db")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{"database-url": "postgres://db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "supabase-key", "value123")

	badPath := filepath.Join(dir, "database-url")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var logs bytes.Buffer
	got, err := Load(dir, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"supabase-key": "value123"}, got)
	assert.Contains(t, logs.String(), "could not read secret")
}

func TestApply(t *testing.T) {
	loaded := map[string]string{
		KeySupabase:    "from-secrets",
		KeyDatabaseURL: "postgres://secrets",
	}

	cfg := types.SourceConfig{}
	Apply(&cfg, loaded)
	assert.Equal(t, "from-secrets", cfg.APIKey)
	assert.Equal(t, "postgres://secrets", cfg.DSN)

	cfg = types.SourceConfig{APIKey: "from-config"}
	Apply(&cfg, loaded)
	assert.Equal(t, "from-config", cfg.APIKey)

	cfg = types.SourceConfig{}
	Apply(&cfg, map[string]string{})
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.DSN)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
