// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Verdict is the user's decision on an item.
type Verdict string

const (
	// VerdictLike marks an item as liked. Liked items become the
	// reference set for similarity scoring.
	VerdictLike Verdict = "like"
	// VerdictDislike marks an item as disliked. Disliked items are
	// excluded from candidates but never compared against.
	VerdictDislike Verdict = "dislike"
	// VerdictNeutral marks an item as seen but unrated either way.
	VerdictNeutral Verdict = "neutral"
)

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictLike, VerdictDislike, VerdictNeutral:
		return true
	default:
		return false
	}
}

// ParseVerdict converts a string to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown verdict %q", s)
	}
	return v, nil
}

// TasteTags is the fixed controlled vocabulary of taste descriptors a
// judgment may carry. Tags outside this list are dropped at the API edge.
var TasteTags = []string{
	"cozy",
	"dark",
	"feel-good",
	"funny",
	"gripping",
	"rewatchable",
	"slow-burn",
	"thought-provoking",
	"visually-striking",
	"weird",
}

var tasteTagSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(TasteTags))
	for _, t := range TasteTags {
		set[t] = struct{}{}
	}
	return set
}()

// NormalizeTags lowercases, trims, deduplicates, and filters tags to the
// controlled vocabulary. The result is sorted for stable comparison and
// persistence. Returns nil for an empty result.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if _, known := tasteTagSet[t]; !known {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Judgment represents the user's decision on exactly one item.
// At most one judgment exists per item id; a new judgment replaces the
// prior one entirely (verdict, note, and tags are overwritten, not merged).
type Judgment struct {
	// ItemID references a current (or formerly loaded) catalog item.
	ItemID string `json:"item_id"`

	// Verdict is the decision: like, dislike, or neutral.
	Verdict Verdict `json:"verdict"`

	// Note is optional free text.
	Note string `json:"note,omitempty"`

	// Tags is a set of taste descriptors drawn from TasteTags.
	Tags []string `json:"tags,omitempty"`

	// RecordedAt is set at creation/update time. Internal bookkeeping
	// only; never required for scoring or export fidelity.
	RecordedAt time.Time `json:"recorded_at"`
}

// VerdictCounts aggregates judgments by verdict.
type VerdictCounts struct {
	Like    int `json:"like"`
	Dislike int `json:"dislike"`
	Neutral int `json:"neutral"`
}

// Total returns the total number of judgments counted.
func (c VerdictCounts) Total() int {
	return c.Like + c.Dislike + c.Neutral
}

// ExportEntry is the read-only projection of one judgment for downstream
// consumers. Timestamps are deliberately omitted; they carry no
// decision-relevant signal outside the core.
type ExportEntry struct {
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	ExternalID string   `json:"external_id,omitempty"`
	Verdict    Verdict  `json:"verdict"`
	Note       string   `json:"note,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Export groups export entries by verdict.
type Export struct {
	Liked    []ExportEntry `json:"liked"`
	Disliked []ExportEntry `json:"disliked"`
	Neutral  []ExportEntry `json:"neutral"`
}
