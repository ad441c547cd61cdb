// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pub-catalog/internal/catalog"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively search and filter the catalog",
	Long: `Browse loads the catalog and reads commands from standard input, one per
line. The filter state persists across commands:

  search <text>   search titles and keywords (no text clears it)
  toggle <kw>     select or deselect a keyword
  clear           deselect all keywords (the search is kept)
  keywords        list the keyword vocabulary, selected ones marked with *
  show            print the visible publications
  reload          fetch the catalog again
  help            print this list
  quit            end the session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newController(appConfig, logger)
		if err != nil {
			return err
		}
		if err := c.Load(cmd.Context()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "load failed: %v\n", err)
		}
		return runSession(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

const sessionHelp = `commands: search <text>, toggle <kw>, clear, keywords, show, reload, help, quit`

// runSession executes browse commands from in until quit or end of input.
// A failed load does not end the session; reload may recover it.
func runSession(ctx context.Context, c *catalog.Controller, in io.Reader, out io.Writer) error {
	writeFilterStatus(out, c)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		verb, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(verb) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, sessionHelp)
			continue
		case "search":
			c.SetSearch(arg)
		case "toggle":
			if arg == "" {
				fmt.Fprintln(out, "toggle needs a keyword")
				continue
			}
			c.ToggleKeyword(strings.ToLower(arg))
		case "clear":
			c.ClearFilters()
		case "keywords":
			for _, kw := range c.AllKeywords() {
				mark := " "
				if c.IsSelected(kw) {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\n", mark, kw)
			}
			continue
		case "show":
			if err := writeCards(out, c.Cards(), false); err != nil {
				return err
			}
			continue
		case "reload":
			if err := c.Load(ctx); err != nil {
				fmt.Fprintf(out, "load failed: %v\n", err)
			}
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", verb)
			continue
		}
		writeFilterStatus(out, c)
	}
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
