// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package judgment

import "github.com/reelpick/reelpick/internal/models"

// ItemResolver looks up current catalog items for export enrichment.
// Implemented by the catalog store.
type ItemResolver interface {
	Get(id string) (models.Item, bool)
}

// BuildExport assembles the read-only export projection: liked, disliked,
// and neutral entries carrying title/year/external id but no timestamps.
//
// Judgments whose item id is absent from the current catalog still export
// with their recorded verdict, note, and tags; the user's past decision
// persists even when the catalog view changed between sessions. Such
// entries carry an empty title.
func (s *Store) BuildExport(resolver ItemResolver) models.Export {
	export := models.Export{
		Liked:    []models.ExportEntry{},
		Disliked: []models.ExportEntry{},
		Neutral:  []models.ExportEntry{},
	}

	for _, j := range s.All() {
		entry := models.ExportEntry{
			Verdict: j.Verdict,
			Note:    j.Note,
			Tags:    j.Tags,
		}
		if item, ok := resolver.Get(j.ItemID); ok {
			entry.Title = item.Title
			entry.Year = item.Year
			entry.ExternalID = item.ExternalID
		}

		switch j.Verdict {
		case models.VerdictLike:
			export.Liked = append(export.Liked, entry)
		case models.VerdictDislike:
			export.Disliked = append(export.Disliked, entry)
		case models.VerdictNeutral:
			export.Neutral = append(export.Neutral, entry)
		}
	}

	return export
}
