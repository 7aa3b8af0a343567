// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package sampler

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"

	"github.com/rs/zerolog"
)

// ErrExhausted is returned when every catalog item has been judged and
// nothing remains to sample.
var ErrExhausted = errors.New("sampler: all catalog items judged")

// Catalog is the read-only item source batches are drawn from.
type Catalog interface {
	Items() []models.Item
}

// JudgmentSource reports which items have already been judged.
type JudgmentSource interface {
	All() []models.Judgment
}

// Config controls batch sizing and short-term memory.
type Config struct {
	// MinBatch and MaxBatch bound the uniform random batch size.
	MinBatch int
	MaxBatch int

	// RecentCap is the short-term memory size; when it is exceeded,
	// only the most recent RecentRetain entries survive.
	RecentCap    int
	RecentRetain int

	// Seed seeds the batch RNG. Zero means seed from entropy.
	Seed int64

	// StarterBias prefers items carrying an external reference ID when
	// the user has not judged anything yet. Those items are the widely
	// known ones, which makes the first batches judgeable.
	StarterBias bool
}

// DefaultConfig returns the standard sampling policy.
func DefaultConfig() Config {
	return Config{
		MinBatch:     15,
		MaxBatch:     20,
		RecentCap:    100,
		RecentRetain: 50,
		StarterBias:  true,
	}
}

// Sampler deals random batches of unjudged items and tracks batch
// history for previous/next navigation. Safe for concurrent use.
type Sampler struct {
	mu        sync.Mutex
	catalog   Catalog
	judgments JudgmentSource
	cfg       Config
	rng       *rand.Rand
	logger    zerolog.Logger

	// recent is the ordered short-term memory of dealt item IDs,
	// oldest first. recentSet mirrors it for O(1) lookups.
	recent    []string
	recentSet map[string]struct{}

	// history holds every dealt batch; cursor points at the batch the
	// user is currently viewing, or -1 before the first deal.
	history [][]models.Item
	cursor  int
}

// New creates a sampler. Out-of-range config values fall back to
// defaults.
func New(catalog Catalog, judgments JudgmentSource, cfg Config, logger zerolog.Logger) *Sampler {
	def := DefaultConfig()
	if cfg.MinBatch <= 0 || cfg.MaxBatch < cfg.MinBatch {
		cfg.MinBatch = def.MinBatch
		cfg.MaxBatch = def.MaxBatch
	}
	if cfg.RecentCap <= 0 || cfg.RecentRetain <= 0 || cfg.RecentRetain > cfg.RecentCap {
		cfg.RecentCap = def.RecentCap
		cfg.RecentRetain = def.RecentRetain
	}

	src := rand.NewSource(cfg.Seed)
	if cfg.Seed == 0 {
		src = rand.NewSource(rand.Int63())
	}

	return &Sampler{
		catalog:   catalog,
		judgments: judgments,
		cfg:       cfg,
		rng:       rand.New(src),
		logger:    logger,
		recentSet: make(map[string]struct{}),
		cursor:    -1,
	}
}

// Next returns the next batch. Forward history is replayed before any
// new sampling happens, so next after previous restores the exact
// batch the user navigated away from. Returns ErrExhausted when every
// item has been judged.
func (s *Sampler) Next() ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= 0 && s.cursor < len(s.history)-1 {
		s.cursor++
		return s.history[s.cursor], nil
	}

	return s.dealLocked()
}

// Previous steps back to the prior batch in history. The second return
// is false when there is no prior batch.
func (s *Sampler) Previous() ([]models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor <= 0 {
		return nil, false
	}
	s.cursor--
	return s.history[s.cursor], true
}

// Refresh deals a fresh batch from the current position, discarding any
// forward history. Navigating back from a refreshed batch still works;
// navigating forward leads to the refreshed branch.
func (s *Sampler) Refresh() ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= 0 && s.cursor < len(s.history)-1 {
		s.history = s.history[:s.cursor+1]
	}
	return s.dealLocked()
}

// Current returns the batch under the cursor, or false before the
// first deal.
func (s *Sampler) Current() ([]models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < 0 {
		return nil, false
	}
	return s.history[s.cursor], true
}

// HasPrevious reports whether Previous would succeed.
func (s *Sampler) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// HasNext reports whether forward history exists.
func (s *Sampler) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= 0 && s.cursor < len(s.history)-1
}

// dealLocked samples a fresh batch and appends it to history.
func (s *Sampler) dealLocked() ([]models.Item, error) {
	unjudged := s.unjudgedLocked()
	if len(unjudged) == 0 {
		return nil, ErrExhausted
	}

	candidates := s.filterRecentLocked(unjudged)

	// When short-term memory has eaten most of the pool but plenty of
	// unjudged items remain, forget the memory rather than serve
	// shrinking batches. The same applies when memory covers the whole
	// pool: with anything left unjudged a deal must never come back
	// empty, so the memory yields.
	if len(candidates) == 0 ||
		(len(candidates) < s.cfg.MaxBatch && len(unjudged) >= s.cfg.MaxBatch) {
		s.logger.Debug().
			Int("candidates", len(candidates)).
			Int("unjudged", len(unjudged)).
			Msg("resetting short-term sample memory")
		s.recent = s.recent[:0]
		s.recentSet = make(map[string]struct{})
		candidates = unjudged
	}

	size := s.cfg.MinBatch + s.rng.Intn(s.cfg.MaxBatch-s.cfg.MinBatch+1)
	if size > len(candidates) {
		size = len(candidates)
	}

	// Partial Fisher-Yates: only the first size positions need to be
	// uniformly drawn.
	for i := 0; i < size; i++ {
		j := i + s.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	batch := make([]models.Item, size)
	copy(batch, candidates[:size])

	s.rememberLocked(batch)
	s.history = append(s.history, batch)
	s.cursor = len(s.history) - 1
	metrics.RecordBatch(len(batch))

	return batch, nil
}

// unjudgedLocked returns the sampleable pool: catalog items without a
// judgment, with the starter bias applied when nothing has been judged
// yet.
func (s *Sampler) unjudgedLocked() []models.Item {
	judged := make(map[string]struct{})
	for _, j := range s.judgments.All() {
		judged[j.ItemID] = struct{}{}
	}

	var pool []models.Item
	for _, item := range s.catalog.Items() {
		if _, ok := judged[item.ID]; ok {
			continue
		}
		pool = append(pool, item)
	}

	if s.cfg.StarterBias && len(judged) == 0 {
		var known []models.Item
		for _, item := range pool {
			if item.ExternalID != "" {
				known = append(known, item)
			}
		}
		// Only bias when the known subset can fill a batch on its own.
		if len(known) >= s.cfg.MinBatch {
			return known
		}
	}

	return pool
}

// filterRecentLocked drops items sitting in short-term memory.
func (s *Sampler) filterRecentLocked(pool []models.Item) []models.Item {
	out := make([]models.Item, 0, len(pool))
	for _, item := range pool {
		if _, ok := s.recentSet[item.ID]; ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

// rememberLocked records a dealt batch in short-term memory, evicting
// the oldest entries when the cap is exceeded.
func (s *Sampler) rememberLocked(batch []models.Item) {
	for _, item := range batch {
		if _, ok := s.recentSet[item.ID]; ok {
			continue
		}
		s.recent = append(s.recent, item.ID)
		s.recentSet[item.ID] = struct{}{}
	}

	if len(s.recent) <= s.cfg.RecentCap {
		return
	}
	keep := s.recent[len(s.recent)-s.cfg.RecentRetain:]
	s.recent = append([]string(nil), keep...)
	s.recentSet = make(map[string]struct{}, len(s.recent))
	for _, id := range s.recent {
		s.recentSet[id] = struct{}{}
	}
}
