// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package models defines the shared data types of the recommendation core.
//
// The two central types are Item (one recommendable film, immutable for the
// duration of a catalog load) and Judgment (the user's decision on exactly
// one item). Similarity scores are derived values and never persisted; they
// have no type here beyond float64.
//
// Items carry both free-text creator/cast names (for display) and stable
// reference identifiers (for exact-match comparison), because text names
// collide and vary between sources.
package models
