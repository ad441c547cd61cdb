// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubcatalog CLI. It loads a
// publication catalog from the configured source and lets the user search
// and filter it by keyword.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pub-catalog/internal/catalog"
	"github.com/pdiddy/pub-catalog/internal/logging"
	"github.com/pdiddy/pub-catalog/internal/secrets"
	"github.com/pdiddy/pub-catalog/internal/source"
	"github.com/pdiddy/pub-catalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultDBPath is the local catalog written by ingest and read by the
// sqlite source.
const defaultDBPath = "data/catalog.db"

// secretsDir holds one file per credential.
const secretsDir = ".secrets/"

var (
	cfgViper = newViper()

	// appConfig and logger are populated before any subcommand runs.
	appConfig types.CatalogConfig
	logger    *slog.Logger
)

// rootCmd is the base command for the pubcatalog CLI.
var rootCmd = &cobra.Command{
	Use:   "pubcatalog",
	Short: "Browse and filter a catalog of research publications",
	Long: `pubcatalog loads publication records (id, title, keywords, link) from a
PostgREST endpoint, a Postgres database, a local SQLite catalog, or a YAML/JSON
file. Keywords are normalized and the list can be narrowed by a free-text
title search and by selecting keywords.

Use ingest to build a local SQLite catalog from a CSV, JSON, or YAML export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := decodeConfig(cfgViper)
		if err != nil {
			return err
		}
		logger = logging.New(os.Stderr, cfg.Log.Level, "pubcatalog")

		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		secrets.Apply(&cfg.Source, s)

		appConfig = cfg
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubcatalog.yaml or ~/.config/pubcatalog/pubcatalog.yaml)")
	rootCmd.PersistentFlags().String("source", "", "source kind: postgrest, postgres, sqlite, or file")
	rootCmd.PersistentFlags().String("path", "", "SQLite database or YAML/JSON file for the sqlite and file sources")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	cfgViper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source"))
	cfgViper.BindPFlag("source.path", rootCmd.PersistentFlags().Lookup("path"))
	cfgViper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// newViper returns a viper instance with defaults and environment binding.
// Every key has a default so AutomaticEnv can override it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("source.kind", string(types.SourceSQLite))
	v.SetDefault("source.table", types.DefaultTable)
	v.SetDefault("source.url", "")
	v.SetDefault("source.api_key", "")
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.path", "")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "pubcatalog/"+version)
	v.SetDefault("http.rate_limit_retries", 0)
	v.SetDefault("catalog.id_strategy", string(types.IDRandom))
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("PUBCATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		cfgViper.SetConfigFile(cfgFile)
	} else {
		cfgViper.SetConfigName("pubcatalog")
		cfgViper.SetConfigType("yaml")
		cfgViper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			cfgViper.AddConfigPath(filepath.Join(home, ".config", "pubcatalog"))
		}
	}

	if err := cfgViper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", cfgViper.ConfigFileUsed())
	}
}

// decodeConfig unmarshals v into a CatalogConfig and validates the enums.
// Only the sqlite source gets a default path.
func decodeConfig(v *viper.Viper) (types.CatalogConfig, error) {
	var cfg types.CatalogConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source.Kind = types.SourceKind(strings.ToLower(string(cfg.Source.Kind)))
	if cfg.Source.Kind == types.SourceSQLite && cfg.Source.Path == "" {
		cfg.Source.Path = defaultDBPath
	}

	switch cfg.Catalog.IDStrategy {
	case types.IDRandom, types.IDStable:
	case "":
		cfg.Catalog.IDStrategy = types.IDRandom
	default:
		return cfg, fmt.Errorf("invalid catalog.id_strategy %q: use random or stable", cfg.Catalog.IDStrategy)
	}
	return cfg, nil
}

// newController builds the configured source and an idle controller over it.
func newController(cfg types.CatalogConfig, log *slog.Logger) (*catalog.Controller, source.Source, error) {
	src, err := source.New(cfg.Source, cfg.HTTP)
	if err != nil {
		return nil, nil, err
	}
	c := catalog.New(src, catalog.Options{
		Table:      cfg.Source.Table,
		IDStrategy: cfg.Catalog.IDStrategy,
		Logger:     log,
	})
	return c, src, nil
}

// loadController builds the controller and runs the initial load.
func loadController(ctx context.Context) (*catalog.Controller, error) {
	c, _, err := newController(appConfig, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
