// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords turns the keyword value of a publication row into a
// canonical list of lowercase tokens.
//
// A row's keywords may arrive as a list, as a delimited string (including a
// Postgres array literal such as "{bio,space}"), or not at all. When no
// explicit keywords exist the tokens are derived from the title.
package keywords

import (
	"fmt"
	"reflect"
	"strings"
)

// minTitleWordLen is the length a title word must exceed to become a keyword.
const minTitleWordLen = 3

// Separator joins keywords into the cached search text.
const Separator = ", "

// Normalize returns distinct, non-empty, lowercase keywords in first-seen
// order. It never fails.
//
// Lists are used element by element; an empty list yields an empty result
// without consulting the title. A string that is empty after trimming is
// treated as absent and falls through to the title.
func Normalize(raw any, title string) []string {
	if items, ok := listItems(raw); ok {
		return fromList(items)
	}

	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		return fromDelimited(s)
	}

	if title != "" {
		return fromTitle(title)
	}

	return []string{}
}

// Join returns the comma-space join of kws.
func Join(kws []string) string {
	return strings.Join(kws, Separator)
}

// Contains reports whether kw is one of kws.
func Contains(kws []string, kw string) bool {
	for _, k := range kws {
		if k == kw {
			return true
		}
	}
	return false
}

// listItems reports whether raw is list-like and returns its elements.
func listItems(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// []byte is text, not a list of tokens.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func fromList(items []any) []string {
	d := newDeduper(len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		d.add(strings.ToLower(strings.TrimSpace(fmt.Sprint(item))))
	}
	return d.out
}

func fromDelimited(s string) []string {
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	parts := strings.FieldsFunc(s, isDelimiter)
	d := newDeduper(len(parts))
	for _, p := range parts {
		d.add(strings.ToLower(strings.TrimSpace(p)))
	}
	return d.out
}

func isDelimiter(r rune) bool {
	return r == ',' || r == ';' || r == '|'
}

func fromTitle(title string) []string {
	words := strings.Fields(title)
	d := newDeduper(len(words))
	for _, w := range words {
		w = strings.ToLower(stripNonAlnum(w))
		if len(w) > minTitleWordLen {
			d.add(w)
		}
	}
	return d.out
}

// stripNonAlnum removes every rune that is not an ASCII letter or digit.
func stripNonAlnum(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	for i := 0; i < len(w); i++ {
		c := w[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// deduper collects non-empty tokens, keeping the first occurrence.
type deduper struct {
	seen map[string]struct{}
	out  []string
}

func newDeduper(n int) *deduper {
	return &deduper{
		seen: make(map[string]struct{}, n),
		out:  make([]string, 0, n),
	}
}

func (d *deduper) add(tok string) {
	if tok == "" {
		return
	}
	if _, ok := d.seen[tok]; ok {
		return
	}
	d.seen[tok] = struct{}{}
	d.out = append(d.out, tok)
}
