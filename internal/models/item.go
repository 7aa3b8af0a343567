// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package models

// MaxCastMembers is the cast truncation limit applied at ingestion.
// Cast lists beyond this size add noise, not signal, to cast overlap.
const MaxCastMembers = 10

// Item represents one recommendable work in the catalog.
//
// ID is the primary key and is immutable once the item is loaded. A zero
// Year means the release year is unknown; scoring treats it as maximal
// temporal dissimilarity rather than skipping the factor.
type Item struct {
	// ID is the stable catalog identifier, unique within one load.
	ID string `json:"id"`

	// Title is required for display and search-link generation.
	Title string `json:"title"`

	// Year is the release year, 0 when unknown.
	Year int `json:"year,omitempty"`

	// Genres is an unordered set of normalized lowercase genre names.
	Genres []string `json:"genres"`

	// Creators is the ordered free-text creator (director) list.
	Creators []string `json:"creators,omitempty"`

	// CreatorRefs is the set of stable creator identifiers used for
	// exact-match comparison.
	CreatorRefs []string `json:"creator_refs,omitempty"`

	// Cast is the ordered free-text cast list, truncated to MaxCastMembers.
	Cast []string `json:"cast,omitempty"`

	// CastRefs is the set of stable cast identifiers, same truncation.
	CastRefs []string `json:"cast_refs,omitempty"`

	// RuntimeMinutes is the runtime, 0 when unknown.
	RuntimeMinutes int `json:"runtime_minutes,omitempty"`

	// ExternalID is a cross-reference identifier (e.g. an IMDb id).
	ExternalID string `json:"external_id,omitempty"`

	// Source tags the provenance of the record. Never empty.
	Source string `json:"source"`

	// PosterURL is display-only and never used in scoring.
	PosterURL string `json:"poster_url,omitempty"`
}

// HasYear reports whether the release year is known.
func (i Item) HasYear() bool {
	return i.Year > 0
}
