// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pub-catalog/internal/ingest"
	"github.com/pdiddy/pub-catalog/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Import publications from CSV, JSON, or YAML into the local catalog",
	Long: `Ingest reads a CSV export (columns title and link, optional id and
keywords separated by ";") or a JSON/YAML list of rows and upserts them into
the SQLite catalog. Rows missing a title or link are skipped. Rows without
an id get one derived from the title and link, so re-importing the same
file updates rows in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = ingestDBPath(appConfig.Source)
	}

	im, err := ingest.NewImporter(dbPath)
	if err != nil {
		return err
	}
	defer im.Close()

	summary, err := im.ImportFile(cmd.Context(), args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d row(s) failed to import", summary.Failed)
	}
	return nil
}

// ingestDBPath writes into the configured catalog when the sqlite source is
// selected, otherwise into the default location.
func ingestDBPath(cfg types.SourceConfig) string {
	if cfg.Kind == types.SourceSQLite && cfg.Path != "" {
		return cfg.Path
	}
	return defaultDBPath
}

func init() {
	ingestCmd.Flags().String("db", "", "catalog database to write (default: source.path for the sqlite source, else "+defaultDBPath+")")

	rootCmd.AddCommand(ingestCmd)
}
