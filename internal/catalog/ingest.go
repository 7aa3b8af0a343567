// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/models"
)

// RawItem is one unvalidated record as delivered by an external loader.
// Every field is optional at this stage; Normalize decides what survives.
type RawItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	Genres         []string `json:"genres"`
	Creators       []string `json:"creators"`
	CreatorRefs    []string `json:"creator_refs"`
	Cast           []string `json:"cast"`
	CastRefs       []string `json:"cast_refs"`
	RuntimeMinutes int      `json:"runtime_minutes"`
	ExternalID     string   `json:"external_id"`
	Source         string   `json:"source"`
	PosterURL      string   `json:"poster_url"`
}

// LoadStats reports what happened during one catalog load.
type LoadStats struct {
	Loaded     int `json:"loaded"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
}

// catalogFile is the on-disk shape of a dataset file.
type catalogFile struct {
	Version string    `json:"version,omitempty"`
	Source  string    `json:"source,omitempty"`
	Films   []RawItem `json:"films"`
}

// Normalize converts a raw record into a valid Item.
// Returns an error when a structurally required field is missing; the
// caller drops the record and continues.
func Normalize(raw RawItem) (models.Item, error) {
	id := strings.TrimSpace(raw.ID)
	title := strings.TrimSpace(raw.Title)
	source := strings.TrimSpace(raw.Source)

	switch {
	case id == "":
		return models.Item{}, fmt.Errorf("record missing id (title %q)", raw.Title)
	case title == "":
		return models.Item{}, fmt.Errorf("record %s missing title", id)
	case source == "":
		return models.Item{}, fmt.Errorf("record %s missing source", id)
	}

	item := models.Item{
		ID:             id,
		Title:          title,
		Year:           raw.Year,
		Genres:         normalizeSet(raw.Genres, true),
		Creators:       normalizeSeq(raw.Creators, 0),
		CreatorRefs:    normalizeSet(raw.CreatorRefs, false),
		Cast:           normalizeSeq(raw.Cast, models.MaxCastMembers),
		CastRefs:       truncate(normalizeSet(raw.CastRefs, false), models.MaxCastMembers),
		RuntimeMinutes: raw.RuntimeMinutes,
		ExternalID:     strings.TrimSpace(raw.ExternalID),
		Source:         source,
		PosterURL:      strings.TrimSpace(raw.PosterURL),
	}
	if item.Year < 0 {
		item.Year = 0
	}
	if item.RuntimeMinutes < 0 {
		item.RuntimeMinutes = 0
	}

	return item, nil
}

// normalizeSet trims, optionally lowercases, and deduplicates while
// preserving first-seen order.
func normalizeSet(values []string, lower bool) []string {
	if len(values) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// normalizeSeq trims empties out of an ordered sequence, truncating to
// limit when limit > 0.
func normalizeSeq(values []string, limit int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return truncate(out, limit)
}

func truncate(values []string, limit int) []string {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

// Ingest normalizes a sequence of raw records into a Store.
// Duplicate ids within one load are a data error; the last record wins
// and the collision is counted and logged.
//
//nolint:gocritic // rangeValCopy: RawItem passed by value in range, acceptable for clarity
func Ingest(records []RawItem, logger zerolog.Logger) (*Store, LoadStats) {
	log := logger.With().Str("component", "catalog").Logger()

	items := make([]models.Item, 0, len(records))
	index := make(map[string]int, len(records))
	stats := LoadStats{}

	for _, raw := range records {
		item, err := Normalize(raw)
		if err != nil {
			stats.Dropped++
			log.Warn().Err(err).Msg("dropped malformed catalog record")
			continue
		}

		if at, exists := index[item.ID]; exists {
			// Last write wins.
			stats.Duplicates++
			log.Warn().Str("id", item.ID).Str("title", item.Title).Msg("duplicate catalog id, last record wins")
			items[at] = item
			continue
		}

		index[item.ID] = len(items)
		items = append(items, item)
	}

	stats.Loaded = len(items)
	log.Info().
		Int("loaded", stats.Loaded).
		Int("dropped", stats.Dropped).
		Int("duplicates", stats.Duplicates).
		Msg("catalog load complete")

	return newStore(items, index), stats
}

// LoadFile reads a dataset file and ingests it. The file may be either a
// wrapper object with a "films" array (the curated dataset shape) or a
// bare array of records.
func LoadFile(path string, logger zerolog.Logger) (*Store, LoadStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read catalog file: %w", err)
	}

	var wrapper catalogFile
	if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Films == nil {
		var bare []RawItem
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			return nil, LoadStats{}, fmt.Errorf("parse catalog file %s: %w", path, bareErr)
		}
		wrapper.Films = bare
	}

	store, stats := Ingest(wrapper.Films, logger)
	return store, stats, nil
}
