// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package judgment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/models"
)

// Persister is the durable storage collaborator. Implementations receive
// the exact judgment shape and are responsible for rehydrating it at
// startup. All methods may fail; the store treats failures as non-fatal.
type Persister interface {
	Save(ctx context.Context, j models.Judgment) error
	Delete(ctx context.Context, itemID string) error
	DeleteAll(ctx context.Context) error
	LoadAll(ctx context.Context) ([]models.Judgment, error)
}

// Store holds the user's judgments keyed by item id.
// It is safe for concurrent use, though the design assumes exactly one
// writer (the user-facing API) issuing sequential mutations.
type Store struct {
	mu        sync.RWMutex
	judgments map[string]models.Judgment

	persister Persister // nil disables persistence
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStore creates a judgment store. persister may be nil for
// session-only (in-memory) operation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(persister Persister, logger zerolog.Logger) *Store {
	return &Store{
		judgments: make(map[string]models.Judgment),
		persister: persister,
		logger:    logger.With().Str("component", "judgment").Logger(),
		now:       time.Now,
	}
}

// Rehydrate loads the persisted judgment set into memory. Called once at
// startup before the store is exposed; an error here is fatal for the
// caller to decide, unlike the best-effort writes.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	loaded, err := s.persister.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range loaded {
		s.judgments[j.ItemID] = j
	}

	s.logger.Info().Int("count", len(loaded)).Msg("judgments rehydrated")
	return nil
}

// Record upserts the judgment for itemID. Any existing judgment for the
// same item is replaced entirely; verdict, note, and tags are overwritten,
// never merged. The in-memory state change always stands; persistence
// failure is logged and counted but not surfaced.
func (s *Store) Record(ctx context.Context, itemID string, verdict models.Verdict, note string, tags []string) models.Judgment {
	j := models.Judgment{
		ItemID:     itemID,
		Verdict:    verdict,
		Note:       note,
		Tags:       models.NormalizeTags(tags),
		RecordedAt: s.now(),
	}

	s.mu.Lock()
	s.judgments[itemID] = j
	s.mu.Unlock()

	metrics.RecordJudgment(string(verdict))

	if s.persister != nil {
		if err := s.persister.Save(ctx, j); err != nil {
			metrics.RecordPersistenceFailure("save")
			s.logger.Error().Err(err).Str("item_id", itemID).Msg("judgment persistence failed, in-memory state retained")
		}
	}

	return j
}

// Remove deletes the judgment for itemID. Removing an absent judgment is
// a no-op; the return value reports whether one existed.
func (s *Store) Remove(ctx context.Context, itemID string) bool {
	s.mu.Lock()
	_, existed := s.judgments[itemID]
	delete(s.judgments, itemID)
	s.mu.Unlock()

	if !existed {
		return false
	}

	metrics.RecordJudgmentRemoval()

	if s.persister != nil {
		if err := s.persister.Delete(ctx, itemID); err != nil {
			metrics.RecordPersistenceFailure("delete")
			s.logger.Error().Err(err).Str("item_id", itemID).Msg("judgment deletion persistence failed")
		}
	}

	return true
}

// Clear destroys the full judgment set. Only ever triggered by an
// explicit user action.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	count := len(s.judgments)
	s.judgments = make(map[string]models.Judgment)
	s.mu.Unlock()

	s.logger.Info().Int("count", count).Msg("all judgments cleared")

	if s.persister != nil {
		if err := s.persister.DeleteAll(ctx); err != nil {
			metrics.RecordPersistenceFailure("clear")
			s.logger.Error().Err(err).Msg("judgment clear persistence failed")
		}
	}
}

// Get returns the judgment for itemID, if any.
func (s *Store) Get(itemID string) (models.Judgment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.judgments[itemID]
	return j, ok
}

// All returns a snapshot of every judgment, sorted by item id for
// reproducible iteration.
func (s *Store) All() []models.Judgment {
	s.mu.RLock()
	out := make([]models.Judgment, 0, len(s.judgments))
	for _, j := range s.judgments {
		out = append(out, j)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, k int) bool { return out[i].ItemID < out[k].ItemID })
	return out
}

// CountByVerdict tallies judgments per verdict.
func (s *Store) CountByVerdict() models.VerdictCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c models.VerdictCounts
	for _, j := range s.judgments {
		switch j.Verdict {
		case models.VerdictLike:
			c.Like++
		case models.VerdictDislike:
			c.Dislike++
		case models.VerdictNeutral:
			c.Neutral++
		}
	}
	return c
}

// Len returns the number of judgments held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.judgments)
}
