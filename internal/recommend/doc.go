// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package recommend implements transparent content-based recommendation.
//
// # Scoring
//
// The similarity between two items is a weighted sum of four independent
// sub-scores, each normalized before weighting:
//
//	sim(a, b) = 5.0 * jaccard(genres_a, genres_b) +
//	            3.0 * intersects(creatorRefs_a, creatorRefs_b) +
//	            2.0 * jaccard(castRefs_a, castRefs_b) +
//	            1.0 * max(0, 1 - |year_a - year_b| / 100)
//
// Genre is the strongest proxy for tone and content. Creator match is a
// strong but binary signal: people follow directors, not fractional
// director overlap. Cast overlap is weaker because cast lists are
// truncated and ensembles vary. Temporal proximity is a tie-breaking
// signal only.
//
// The engine emits raw weighted sums (range [0, 11] at default weights)
// so it stays composable; the generator normalizes to [0, 1].
//
// # Aggregation
//
// A candidate is scored against every liked item, and the score vector
// collapses through a blended best+average rule: 0.7*max + 0.3*mean.
// Pure averaging penalizes eclectic taste; pure best-match ignores
// consistency. The blend preserves "this matches at least one of your
// loves very well" while still rewarding broad consensus.
//
// # Properties
//
// Scoring is pure, deterministic, total over any two valid items, and
// symmetric. Missing optional fields degrade to the documented zero for
// their factor; they never exclude an item or fail a call.
package recommend
