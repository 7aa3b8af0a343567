// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"math"

	"github.com/reelpick/reelpick/internal/models"
)

// yearHorizon is the year distance at which temporal proximity reaches
// zero. A century apart contributes nothing.
const yearHorizon = 100.0

// Weights holds the similarity factor weights and the aggregation blend.
type Weights struct {
	Genre   float64
	Creator float64
	Cast    float64
	Year    float64

	// BestShare is the weight of the best match in the best+average
	// blend; the mean receives 1-BestShare.
	BestShare float64
}

// DefaultWeights returns the documented default scoring policy.
func DefaultWeights() Weights {
	return Weights{
		Genre:     5.0,
		Creator:   3.0,
		Cast:      2.0,
		Year:      1.0,
		BestShare: 0.7,
	}
}

// Total returns the sum of the factor weights, the upper bound of a raw
// similarity score.
func (w Weights) Total() float64 {
	return w.Genre + w.Creator + w.Cast + w.Year
}

// Scorer computes similarity scores between items. It is stateless and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Zero-valued weights fall back to defaults.
func NewScorer(w Weights) *Scorer {
	if w.Total() <= 0 {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Weights returns the scoring policy in effect.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the raw weighted similarity between a candidate and a
// reference item. Pure and total: any two valid items score without
// error, missing optional fields contribute their documented zero.
func (s *Scorer) Score(candidate, reference models.Item) float64 {
	score := s.weights.Genre * jaccard(candidate.Genres, reference.Genres)

	if intersects(candidate.CreatorRefs, reference.CreatorRefs) {
		score += s.weights.Creator
	}

	score += s.weights.Cast * jaccard(candidate.CastRefs, reference.CastRefs)
	score += s.weights.Year * yearProximity(candidate, reference)

	return score
}

// jaccard computes Jaccard similarity between two string sets.
// Defined as 0 when both sets are empty, never NaN.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}

	intersection := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// intersects reports whether two string sets share any element.
func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	// Probe the smaller set against the larger.
	if len(a) > len(b) {
		a, b = b, a
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// yearProximity computes temporal proximity. Absence of either year is
// maximal dissimilarity for this factor only, never a skip.
func yearProximity(a, b models.Item) float64 {
	if !a.HasYear() || !b.HasYear() {
		return 0
	}
	diff := math.Abs(float64(a.Year - b.Year))
	p := 1.0 - diff/yearHorizon
	if p < 0 {
		return 0
	}
	return p
}
