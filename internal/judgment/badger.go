// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package judgment

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelpick/reelpick/internal/models"
)

// judgmentKeyPrefix namespaces judgment records in BadgerDB.
const judgmentKeyPrefix = "judgment:"

// BadgerPersister implements Persister using BadgerDB for durable,
// local-first storage. Judgments are stored as JSON under
// judgment:<itemID>, the flat keyed structure the persistence contract
// specifies.
type BadgerPersister struct {
	db *badger.DB
}

// NewBadgerPersister creates a BadgerDB-backed persister.
func NewBadgerPersister(db *badger.DB) *BadgerPersister {
	return &BadgerPersister{db: db}
}

var _ Persister = (*BadgerPersister)(nil)

func judgmentKey(itemID string) []byte {
	return []byte(judgmentKeyPrefix + itemID)
}

// Save writes one judgment, overwriting any prior record for the item.
func (p *BadgerPersister) Save(ctx context.Context, j models.Judgment) error {
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal judgment: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(judgmentKey(j.ItemID), data)
	})
}

// Delete removes the judgment for itemID. Deleting an absent key is not
// an error.
func (p *BadgerPersister) Delete(ctx context.Context, itemID string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(judgmentKey(itemID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete judgment: %w", err)
		}
		return nil
	})
}

// DeleteAll removes every persisted judgment.
func (p *BadgerPersister) DeleteAll(ctx context.Context) error {
	var keys [][]byte

	err := p.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(judgmentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan judgments: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete judgment: %w", err)
			}
		}
		return nil
	})
}

// LoadAll rehydrates the full judgment set. Records that fail to decode
// are skipped rather than failing the load; a corrupt row must not cost
// the user their remaining judgments.
func (p *BadgerPersister) LoadAll(ctx context.Context) ([]models.Judgment, error) {
	var out []models.Judgment

	err := p.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(judgmentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var j models.Judgment
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &j)
			})
			if err != nil || j.ItemID == "" || !j.Verdict.Valid() {
				continue
			}
			out = append(out, j)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load judgments: %w", err)
	}

	return out, nil
}
