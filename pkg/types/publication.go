// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the publication catalog:
// the raw rows returned by a publication source, the normalized Publication
// held by the catalog controller, and configuration for each stage.
package types

// Field names requested from every publication source, in select order.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldKeywords = "keywords"
	FieldLink     = "link"
)

// PublicationFields lists the columns fetched for the catalog.
var PublicationFields = []string{FieldID, FieldTitle, FieldKeywords, FieldLink}

// DefaultTable is the collection publications are read from.
const DefaultTable = "publications"

// PublicationRecord is a loosely-typed row as received from a source.
// Any field may be nil. Keywords may be a list, a delimited string, or nil.
type PublicationRecord struct {
	ID       any `json:"id" yaml:"id"`
	Title    any `json:"title" yaml:"title"`
	Keywords any `json:"keywords" yaml:"keywords"`
	Link     any `json:"link" yaml:"link"`
}

// RecordFromMap builds a PublicationRecord from a decoded row. Missing keys
// leave the corresponding field nil.
func RecordFromMap(row map[string]any) PublicationRecord {
	return PublicationRecord{
		ID:       row[FieldID],
		Title:    row[FieldTitle],
		Keywords: row[FieldKeywords],
		Link:     row[FieldLink],
	}
}

// Publication is a normalized catalog entry. It is never mutated after
// construction; a reload replaces the whole list.
type Publication struct {
	// ID is unique within one loaded list. It is synthesized when the
	// source row has none.
	ID string `json:"id" yaml:"id"`

	// Title is the publication title, empty when the source had none.
	Title string `json:"title" yaml:"title"`

	// Keywords holds distinct lowercase tokens in first-seen order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// KeywordsText is Keywords joined with ", ", cached for substring search.
	KeywordsText string `json:"keywords_text" yaml:"keywords_text"`

	// Link is the publication URL, possibly empty.
	Link string `json:"link" yaml:"link"`
}
