// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the loaded publication list and the filter state a
// display layer drives: free-text search and a set of selected keywords.
//
// Derived views (the keyword vocabulary and the filtered list) are
// recomputed lazily and cached until the state they depend on changes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/pub-catalog/internal/keywords"
	"github.com/pdiddy/pub-catalog/internal/source"
	"github.com/pdiddy/pub-catalog/pkg/types"
)

// ErrLoadInProgress is returned by Load while another Load is running.
var ErrLoadInProgress = errors.New("load already in progress")

// Status is the load state of a Controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Options configures a Controller.
type Options struct {
	// Table is the collection to read (default "publications").
	Table string

	// IDStrategy controls identifiers synthesized for rows without one.
	IDStrategy types.IDStrategy

	// Logger receives fetch failures. Nil discards.
	Logger *slog.Logger
}

// Controller owns the publication list and filter state. It is safe for
// concurrent use; the fetch in Load runs without holding the lock.
type Controller struct {
	src   source.Source
	table string
	newID idFunc
	log   *slog.Logger

	mu       sync.Mutex
	pubs     []types.Publication
	search   string
	selected []string
	status   Status
	err      error

	// Cached derivations; nil means stale.
	allKeywords []string
	filtered    []types.Publication
}

// New returns an idle Controller reading from src.
func New(src source.Source, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	table := opts.Table
	if table == "" {
		table = types.DefaultTable
	}
	return &Controller{
		src:   src,
		table: table,
		newID: idGenerator(opts.IDStrategy),
		log:   log,
		pubs:  []types.Publication{},
	}
}

// Load fetches id, title, keywords and link for every row and replaces the
// publication list. On failure the error is logged, the list becomes empty,
// the state becomes StatusFailed and the error is returned. A Load issued
// while another is running returns ErrLoadInProgress and changes nothing.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusLoading {
		c.mu.Unlock()
		return ErrLoadInProgress
	}
	c.status = StatusLoading
	c.err = nil
	c.mu.Unlock()

	records, err := c.src.Fetch(ctx, c.table, types.PublicationFields)
	if err != nil {
		err = fmt.Errorf("fetching publications from %s: %w", c.src.Name(), err)
		c.log.Error("fetching publications failed", "source", c.src.Name(), "table", c.table, "error", err)

		c.mu.Lock()
		c.setPublications([]types.Publication{})
		c.status = StatusFailed
		c.err = err
		c.mu.Unlock()
		return err
	}

	pubs := make([]types.Publication, len(records))
	for i, rec := range records {
		pubs[i] = c.build(rec)
	}
	c.log.Debug("loaded publications", "source", c.src.Name(), "count", len(pubs))

	c.mu.Lock()
	c.setPublications(pubs)
	c.status = StatusLoaded
	c.mu.Unlock()
	return nil
}

// build normalizes one raw row.
func (c *Controller) build(rec types.PublicationRecord) types.Publication {
	title := textOf(rec.Title)
	link := textOf(rec.Link)
	id := formatID(rec.ID)
	if id == "" {
		id = c.newID(title, link)
	}
	kws := keywords.Normalize(rec.Keywords, title)
	return types.Publication{
		ID:           id,
		Title:        title,
		Keywords:     kws,
		KeywordsText: keywords.Join(kws),
		Link:         link,
	}
}

// setPublications replaces the list and drops cached derivations. Callers
// hold c.mu.
func (c *Controller) setPublications(pubs []types.Publication) {
	c.pubs = pubs
	c.allKeywords = nil
	c.filtered = nil
}

// Status returns the current load state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Loading reports whether a Load is running.
func (c *Controller) Loading() bool {
	return c.Status() == StatusLoading
}

// Err returns the reason of the last failed Load, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Publications returns the full loaded list.
func (c *Controller) Publications() []types.Publication {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clonePublications(c.pubs)
}

// clonePublications copies pubs deeply enough that callers cannot reach
// the stored keyword slices.
func clonePublications(pubs []types.Publication) []types.Publication {
	out := make([]types.Publication, len(pubs))
	for i, p := range pubs {
		p.Keywords = slices.Clone(p.Keywords)
		out[i] = p
	}
	return out
}

// AllKeywords returns every distinct keyword across the list, sorted
// ascending.
func (c *Controller) AllKeywords() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.allKeywords == nil {
		seen := make(map[string]struct{})
		all := []string{}
		for _, p := range c.pubs {
			for _, k := range p.Keywords {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					all = append(all, k)
				}
			}
		}
		sort.Strings(all)
		c.allKeywords = all
	}
	return slices.Clone(c.allKeywords)
}

// Filtered returns, in list order, the publications matching the current
// search text and containing every selected keyword.
func (c *Controller) Filtered() []types.Publication {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filtered == nil {
		q := strings.ToLower(strings.TrimSpace(c.search))
		out := []types.Publication{}
		for _, p := range c.pubs {
			if matchesSearch(p, q) && matchesKeywords(p, c.selected) {
				out = append(out, p)
			}
		}
		c.filtered = out
	}
	return clonePublications(c.filtered)
}

func matchesSearch(p types.Publication, q string) bool {
	return q == "" ||
		strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(p.KeywordsText, q)
}

func matchesKeywords(p types.Publication, selected []string) bool {
	for _, kw := range selected {
		if !keywords.Contains(p.Keywords, kw) {
			return false
		}
	}
	return true
}

// Search returns the current search text.
func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// SetSearch replaces the search text.
func (c *Controller) SetSearch(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s != c.search {
		c.search = s
		c.filtered = nil
	}
}

// SelectedKeywords returns the selected keywords in the order they were
// toggled on.
func (c *Controller) SelectedKeywords() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.selected)
}

// IsSelected reports whether kw is selected.
func (c *Controller) IsSelected(kw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.selected, kw)
}

// ToggleKeyword removes kw from the selection if present and adds it
// otherwise. kw is not checked against AllKeywords.
func (c *Controller) ToggleKeyword(kw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.Index(c.selected, kw); i >= 0 {
		c.selected = slices.Delete(c.selected, i, i+1)
	} else {
		c.selected = append(c.selected, kw)
	}
	c.filtered = nil
}

// ClearFilters empties the keyword selection. The search text is kept.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.filtered = nil
}
