// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package catalog

import "github.com/reelpick/reelpick/internal/models"

// Store is the read-only item catalog for one load. It has no writer
// after construction, so no lock is needed.
type Store struct {
	items []models.Item
	index map[string]int
}

func newStore(items []models.Item, index map[string]int) *Store {
	return &Store{items: items, index: index}
}

// NewStore builds a store directly from already-normalized items.
// Intended for tests and in-process loaders that bypass file ingestion.
func NewStore(items []models.Item) *Store {
	index := make(map[string]int, len(items))
	kept := make([]models.Item, 0, len(items))
	for _, item := range items {
		if at, exists := index[item.ID]; exists {
			kept[at] = item
			continue
		}
		index[item.ID] = len(kept)
		kept = append(kept, item)
	}
	return newStore(kept, index)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (models.Item, bool) {
	at, ok := s.index[id]
	if !ok {
		return models.Item{}, false
	}
	return s.items[at], true
}

// Items returns all items in load order. The returned slice is shared;
// callers must treat it as read-only.
func (s *Store) Items() []models.Item {
	return s.items
}

// Len returns the number of items in the catalog.
func (s *Store) Len() int {
	return len(s.items)
}
