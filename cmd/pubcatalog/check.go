// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pub-catalog/internal/catalog"
	"github.com/pdiddy/pub-catalog/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test connectivity to the configured source",
	Long: `Check runs one load against the configured source and reports the
resulting state, the number of publications, and how long the fetch took.
It exits non-zero when the load fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, src, err := newController(appConfig, logger)
		if err != nil {
			return err
		}
		start := time.Now()
		loadErr := c.Load(cmd.Context())
		writeCheckReport(cmd.OutOrStdout(), src, c, time.Since(start))
		return loadErr
	},
}

// writeCheckReport prints the outcome of a connectivity check.
func writeCheckReport(w io.Writer, src source.Source, c *catalog.Controller, elapsed time.Duration) {
	fmt.Fprintf(w, "source:       %s\n", src.Name())
	fmt.Fprintf(w, "status:       %s\n", c.Status())
	fmt.Fprintf(w, "publications: %d\n", len(c.Publications()))
	fmt.Fprintf(w, "keywords:     %d\n", len(c.AllKeywords()))
	fmt.Fprintf(w, "elapsed:      %s\n", elapsed.Round(time.Millisecond))
	if err := c.Err(); err != nil {
		fmt.Fprintf(w, "error:        %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
