package types

import "time"

// HTTPConfig holds shared HTTP settings used by sources that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubcatalog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RateLimitRetries is how many times a request answered with HTTP 429 is
	// retried. Zero disables retries.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
}

// SourceKind identifies the backend publications are fetched from.
type SourceKind string

const (
	SourcePostgREST SourceKind = "postgrest"
	SourcePostgres  SourceKind = "postgres"
	SourceSQLite    SourceKind = "sqlite"
	SourceFile      SourceKind = "file"
)

// SourceConfig selects and configures the publication source.
type SourceConfig struct {
	// Kind selects the backend: postgrest, postgres, sqlite, or file.
	Kind SourceKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Table is the collection to read (default "publications").
	Table string `json:"table" yaml:"table" mapstructure:"table"`

	// URL is the PostgREST project URL (e.g. "https://xyz.supabase.co").
	URL string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`

	// APIKey is sent as the apikey header and bearer token to PostgREST.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// DSN is the Postgres connection string.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`

	// Path is the SQLite database file or the YAML/JSON row file.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// IDStrategy controls how identifiers are synthesized for rows without one.
type IDStrategy string

const (
	// IDRandom generates a fresh random identifier on every load.
	IDRandom IDStrategy = "random"
	// IDStable derives the identifier from the title and link.
	IDStable IDStrategy = "stable"
)

// CatalogSettings holds controller settings.
type CatalogSettings struct {
	IDStrategy IDStrategy `json:"id_strategy" yaml:"id_strategy" mapstructure:"id_strategy"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// CatalogConfig groups all settings for the pubcatalog CLI.
type CatalogConfig struct {
	Source  SourceConfig    `json:"source" yaml:"source" mapstructure:"source"`
	HTTP    HTTPConfig      `json:"http" yaml:"http" mapstructure:"http"`
	Catalog CatalogSettings `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log     LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
