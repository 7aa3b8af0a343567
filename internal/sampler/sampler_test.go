// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package sampler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reelpick/reelpick/internal/models"

	"github.com/rs/zerolog"
)

type fakeCatalog []models.Item

func (c fakeCatalog) Items() []models.Item {
	return c
}

type fakeJudgments []models.Judgment

func (f fakeJudgments) All() []models.Judgment {
	return f
}

func makeItems(n int) fakeCatalog {
	items := make(fakeCatalog, n)
	for i := range items {
		items[i] = models.Item{ID: fmt.Sprintf("item-%03d", i), Title: fmt.Sprintf("Film %d", i)}
	}
	return items
}

func seededConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.StarterBias = false
	return cfg
}

func TestNextBatchSizeWithinBounds(t *testing.T) {
	s := New(makeItems(200), fakeJudgments{}, seededConfig(), zerolog.Nop())

	for i := 0; i < 5; i++ {
		batch, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if len(batch) < 15 || len(batch) > 20 {
			t.Errorf("batch %d size = %d, want within [15, 20]", i, len(batch))
		}
	}
}

func TestNextExcludesJudgedItems(t *testing.T) {
	items := makeItems(40)
	judgments := fakeJudgments{
		{ItemID: "item-000", Verdict: models.VerdictLike},
		{ItemID: "item-001", Verdict: models.VerdictDislike},
		{ItemID: "item-002", Verdict: models.VerdictNeutral},
	}
	s := New(items, judgments, seededConfig(), zerolog.Nop())

	batch, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for _, item := range batch {
		for _, j := range judgments {
			if item.ID == j.ItemID {
				t.Errorf("batch contains judged item %s", item.ID)
			}
		}
	}
}

func TestNextBatchesAreFresh(t *testing.T) {
	// With a pool far larger than the memory cap, consecutive batches
	// must not repeat items.
	s := New(makeItems(500), fakeJudgments{}, seededConfig(), zerolog.Nop())

	seen := make(map[string]int)
	for i := 0; i < 3; i++ {
		batch, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		for _, item := range batch {
			seen[item.ID]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("item %s appeared in %d consecutive batches", id, count)
		}
	}
}

func TestMemoryResetKeepsBatchesFull(t *testing.T) {
	// 30 unjudged items: after the first batch the memory covers most
	// of the pool, so the sampler must forget it and keep dealing
	// full-size batches rather than dribbling out the remainder.
	s := New(makeItems(30), fakeJudgments{}, seededConfig(), zerolog.Nop())

	for i := 0; i < 4; i++ {
		batch, err := s.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if len(batch) < 15 {
			t.Errorf("batch %d size = %d, want full-size after memory reset", i, len(batch))
		}
	}
}

func TestNextExhausted(t *testing.T) {
	items := makeItems(2)
	judgments := fakeJudgments{
		{ItemID: "item-000", Verdict: models.VerdictLike},
		{ItemID: "item-001", Verdict: models.VerdictDislike},
	}
	s := New(items, judgments, seededConfig(), zerolog.Nop())

	if _, err := s.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Next() error = %v, want ErrExhausted", err)
	}
}

func TestSmallCatalogDealsEverything(t *testing.T) {
	s := New(makeItems(7), fakeJudgments{}, seededConfig(), zerolog.Nop())

	batch, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(batch) != 7 {
		t.Errorf("batch size = %d, want all 7 available items", len(batch))
	}
}

func TestSmallCatalogNeverStarves(t *testing.T) {
	// With fewer unjudged items than a full batch, the first deal puts
	// the whole pool into short-term memory. Later deals must yield the
	// memory and re-deal the pool, never an empty batch with a nil
	// error.
	s := New(makeItems(7), fakeJudgments{}, seededConfig(), zerolog.Nop())

	for i := 0; i < 5; i++ {
		batch, err := s.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if len(batch) != 7 {
			t.Fatalf("Next() #%d size = %d, want all 7 while the pool is unjudged", i, len(batch))
		}
	}

	refreshed, err := s.Refresh()
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(refreshed) != 7 {
		t.Errorf("Refresh() size = %d, want all 7", len(refreshed))
	}
}

func TestPreviousRestoresExactBatch(t *testing.T) {
	s := New(makeItems(500), fakeJudgments{}, seededConfig(), zerolog.Nop())

	first, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, ok := s.Previous(); ok {
		t.Fatal("Previous() succeeded with no prior batch")
	}

	if _, err := s.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	back, ok := s.Previous()
	if !ok {
		t.Fatal("Previous() failed with history present")
	}
	if len(back) != len(first) {
		t.Fatalf("previous batch size = %d, want %d", len(back), len(first))
	}
	for i := range back {
		if back[i].ID != first[i].ID {
			t.Errorf("previous batch item %d = %s, want %s", i, back[i].ID, first[i].ID)
		}
	}
}

func TestNextReplaysForwardHistory(t *testing.T) {
	s := New(makeItems(500), fakeJudgments{}, seededConfig(), zerolog.Nop())

	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}
	second, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Previous(); !ok {
		t.Fatal("Previous() failed")
	}
	if !s.HasNext() {
		t.Fatal("HasNext() = false with forward history present")
	}

	replayed, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for i := range replayed {
		if replayed[i].ID != second[i].ID {
			t.Fatalf("forward replay diverged at %d: %s vs %s", i, replayed[i].ID, second[i].ID)
		}
	}
}

func TestRefreshTruncatesForwardHistory(t *testing.T) {
	s := New(makeItems(500), fakeJudgments{}, seededConfig(), zerolog.Nop())

	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}
	second, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Previous(); !ok {
		t.Fatal("Previous() failed")
	}

	refreshed, err := s.Refresh()
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	same := len(refreshed) == len(second)
	if same {
		for i := range refreshed {
			if refreshed[i].ID != second[i].ID {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Refresh() replayed the discarded forward batch instead of sampling fresh")
	}
	if s.HasNext() {
		t.Error("HasNext() = true after Refresh truncated forward history")
	}
}

func TestCurrent(t *testing.T) {
	s := New(makeItems(100), fakeJudgments{}, seededConfig(), zerolog.Nop())

	if _, ok := s.Current(); ok {
		t.Error("Current() returned a batch before the first deal")
	}

	batch, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	current, ok := s.Current()
	if !ok || len(current) != len(batch) {
		t.Errorf("Current() = %d items, want the just-dealt batch of %d", len(current), len(batch))
	}
}

func TestStarterBiasPrefersKnownItems(t *testing.T) {
	items := make(fakeCatalog, 0, 60)
	for i := 0; i < 30; i++ {
		items = append(items, models.Item{ID: fmt.Sprintf("known-%02d", i), ExternalID: fmt.Sprintf("tt%07d", i)})
	}
	for i := 0; i < 30; i++ {
		items = append(items, models.Item{ID: fmt.Sprintf("obscure-%02d", i)})
	}

	cfg := seededConfig()
	cfg.StarterBias = true
	s := New(items, fakeJudgments{}, cfg, zerolog.Nop())

	batch, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for _, item := range batch {
		if item.ExternalID == "" {
			t.Errorf("starter batch contains obscure item %s", item.ID)
		}
	}
}

func TestStarterBiasLiftsAfterFirstJudgment(t *testing.T) {
	items := make(fakeCatalog, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, models.Item{ID: fmt.Sprintf("obscure-%02d", i)})
	}
	items[0].ExternalID = "tt0000001"

	cfg := seededConfig()
	cfg.StarterBias = true
	judgments := fakeJudgments{{ItemID: "obscure-39", Verdict: models.VerdictLike}}
	s := New(items, judgments, cfg, zerolog.Nop())

	batch, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(batch) < 15 {
		t.Errorf("batch size = %d, want a full batch once judging has begun", len(batch))
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := New(makeItems(300), fakeJudgments{}, seededConfig(), zerolog.Nop())
	b := New(makeItems(300), fakeJudgments{}, seededConfig(), zerolog.Nop())

	batchA, errA := a.Next()
	batchB, errB := b.Next()
	if errA != nil || errB != nil {
		t.Fatalf("Next() errors = %v, %v", errA, errB)
	}
	if len(batchA) != len(batchB) {
		t.Fatalf("seeded samplers dealt different sizes: %d vs %d", len(batchA), len(batchB))
	}
	for i := range batchA {
		if batchA[i].ID != batchB[i].ID {
			t.Fatalf("seeded samplers diverged at %d: %s vs %s", i, batchA[i].ID, batchB[i].ID)
		}
	}
}

func TestMemoryEviction(t *testing.T) {
	cfg := seededConfig()
	cfg.RecentCap = 20
	cfg.RecentRetain = 10
	s := New(makeItems(500), fakeJudgments{}, cfg, zerolog.Nop())

	for i := 0; i < 4; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.recent) > cfg.RecentCap {
		t.Errorf("memory size = %d, want <= cap %d", len(s.recent), cfg.RecentCap)
	}
	if len(s.recent) != len(s.recentSet) {
		t.Errorf("memory list and set out of sync: %d vs %d", len(s.recent), len(s.recentSet))
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	s := New(makeItems(100), fakeJudgments{}, Config{MinBatch: -1, MaxBatch: -5}, zerolog.Nop())

	batch, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(batch) < 15 || len(batch) > 20 {
		t.Errorf("batch size = %d, want default bounds [15, 20]", len(batch))
	}
}
