// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pub-catalog/internal/catalog"
	"github.com/pdiddy/pub-catalog/internal/keywords"
)

// noResults is printed when no publication passes the filters.
const noResults = "No publications found."

// writeCards prints cards as an indented JSON array or as a table.
func writeCards(w io.Writer, cards []catalog.Card, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Fprintln(w, noResults)
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-40s  %s\n", "#", "Title", "Keywords", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, c := range cards {
		link := c.Link
		if !c.HasLink() {
			link = "(no link)"
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-40s  %s\n",
			i+1, truncate(c.Title, 50), truncate(keywords.Join(c.Keywords), 40), link)
	}

	fmt.Fprintf(w, "\n%d publications\n", len(cards))
	return nil
}

// writeFilterStatus prints the active search and keyword selection.
func writeFilterStatus(w io.Writer, c *catalog.Controller) {
	search := c.Search()
	if search == "" {
		search = "(none)"
	}
	selected := keywords.Join(c.SelectedKeywords())
	if selected == "" {
		selected = "(none)"
	}
	fmt.Fprintf(w, "search: %s | keywords: %s | showing %d of %d\n",
		search, selected, len(c.Filtered()), len(c.Publications()))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
