// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package catalog holds the full, immutable-per-load set of items.
//
// Ingestion normalizes raw records into the models.Item shape: missing
// optional fields become empty sets or zero values, never nil-pointer
// failures. A raw record missing a structurally required field (id,
// title, source) is dropped and counted; it never fails the whole load.
//
// The store is read-only after load. The recommendation generator and
// batch sampler only run against a fully-loaded store; the composition
// root sequences the load to completion before exposing them.
package catalog
