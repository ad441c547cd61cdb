// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pub-catalog/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list [search...]",
	Short: "List publications matching a search and keywords",
	Long: `List loads the catalog and prints the publications whose title or
keywords contain the search text (case-insensitive) and that carry every
selected keyword.

The search text comes from --search or, if that is empty, from the
positional arguments joined by spaces. Each --keyword toggles one keyword
in the order given.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := loadController(cmd.Context())
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	if search == "" && len(args) > 0 {
		search = strings.Join(args, " ")
	}
	kws, _ := cmd.Flags().GetStringArray("keyword")
	applyFilters(c, search, kws)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeCards(cmd.OutOrStdout(), c.Cards(), jsonOutput)
}

// applyFilters sets the search text and toggles each keyword in order.
// Keywords are lowercased to match the normalized vocabulary.
func applyFilters(c *catalog.Controller, search string, kws []string) {
	c.SetSearch(search)
	for _, kw := range kws {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			c.ToggleKeyword(kw)
		}
	}
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the keyword vocabulary of the catalog",
	Long: `Keywords loads the catalog and prints every distinct normalized keyword,
sorted, one per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadController(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, kw := range c.AllKeywords() {
			fmt.Fprintln(out, kw)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("search", "", "case-insensitive substring of the title or keywords")
	listCmd.Flags().StringArray("keyword", nil, "keyword to toggle (repeatable)")
	listCmd.Flags().Bool("json", false, "output publications as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(keywordsCmd)
}
