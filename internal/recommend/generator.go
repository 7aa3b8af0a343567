// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"sort"
	"time"

	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"

	"github.com/rs/zerolog"
)

// Catalog is the read-only item source the generator scores against.
type Catalog interface {
	Get(id string) (models.Item, bool)
	Items() []models.Item
}

// JudgmentSource provides the judgment snapshot a pass is computed from.
type JudgmentSource interface {
	All() []models.Judgment
}

// Recommendation is a single scored result.
type Recommendation struct {
	Item  models.Item `json:"item"`
	Score float64     `json:"score"`
}

// Result is the outcome of one recommendation pass.
type Result struct {
	Items []Recommendation `json:"items"`

	// LikedCount is the number of liked judgments that resolved to a
	// catalog item and drove this pass.
	LikedCount int `json:"likedCount"`

	// CandidateCount is the number of unjudged items that were scored.
	CandidateCount int `json:"candidateCount"`
}

// Generator produces ranked recommendation lists from the catalog and
// the current judgment state.
type Generator struct {
	catalog      Catalog
	judgments    JudgmentSource
	scorer       *Scorer
	defaultLimit int
	maxLimit     int
	logger       zerolog.Logger
}

// NewGenerator creates a generator. Non-positive limits fall back to
// 20 (default) and 100 (max).
func NewGenerator(catalog Catalog, judgments JudgmentSource, scorer *Scorer, defaultLimit, maxLimit int, logger zerolog.Logger) *Generator {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &Generator{
		catalog:      catalog,
		judgments:    judgments,
		scorer:       scorer,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

// Recommend runs one full recommendation pass.
//
// Every judged item, whatever its verdict, is excluded from the
// candidate set. Each remaining item is scored against all liked items
// and the score vector collapses to BestShare*max + (1-BestShare)*mean,
// normalized by the total factor weight so scores land in [0, 1].
// Results are sorted by score descending with a stable sort, so equal
// scores keep catalog order. With no liked items the result is empty:
// the engine never guesses.
func (g *Generator) Recommend(limit int) Result {
	start := time.Now()
	defer func() {
		metrics.RecordRecommendation(time.Since(start))
	}()

	if limit <= 0 {
		limit = g.defaultLimit
	}
	if limit > g.maxLimit {
		limit = g.maxLimit
	}

	judged := make(map[string]struct{})
	var liked []models.Item
	for _, j := range g.judgments.All() {
		judged[j.ItemID] = struct{}{}
		if j.Verdict != models.VerdictLike {
			continue
		}
		item, ok := g.catalog.Get(j.ItemID)
		if !ok {
			// A stale judgment for an item no longer in the catalog
			// excludes the ID but contributes no taste signal.
			g.logger.Debug().
				Str("item_id", j.ItemID).
				Msg("liked item missing from catalog, skipping as reference")
			continue
		}
		liked = append(liked, item)
	}

	result := Result{
		Items:      []Recommendation{},
		LikedCount: len(liked),
	}
	if len(liked) == 0 {
		return result
	}

	total := g.scorer.Weights().Total()
	bestShare := g.scorer.Weights().BestShare

	for _, candidate := range g.catalog.Items() {
		if _, ok := judged[candidate.ID]; ok {
			continue
		}
		result.CandidateCount++

		best := 0.0
		sum := 0.0
		for _, ref := range liked {
			s := g.scorer.Score(candidate, ref)
			sum += s
			if s > best {
				best = s
			}
		}
		mean := sum / float64(len(liked))
		blended := bestShare*best + (1-bestShare)*mean

		result.Items = append(result.Items, Recommendation{
			Item:  candidate,
			Score: blended / total,
		})
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].Score > result.Items[j].Score
	})

	if len(result.Items) > limit {
		result.Items = result.Items[:limit]
	}

	g.logger.Debug().
		Int("liked", result.LikedCount).
		Int("candidates", result.CandidateCount).
		Int("returned", len(result.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation pass complete")

	return result
}
