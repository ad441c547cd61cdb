// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"slices"
	"strings"

	"github.com/pdiddy/pub-catalog/pkg/types"
)

// Card is what a display layer renders for one visible publication.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Link     string   `json:"link"`
	Keywords []string `json:"keywords"`
}

// HasLink reports whether the card carries a usable link.
func (c Card) HasLink() bool {
	return strings.TrimSpace(c.Link) != ""
}

// CardOf builds the display card for p. The card owns its keyword slice.
func CardOf(p types.Publication) Card {
	return Card{ID: p.ID, Title: p.Title, Link: p.Link, Keywords: slices.Clone(p.Keywords)}
}

// Cards returns one Card per publication in Filtered.
func (c *Controller) Cards() []Card {
	pubs := c.Filtered()
	cards := make([]Card, len(pubs))
	for i, p := range pubs {
		cards[i] = CardOf(p)
	}
	return cards
}
