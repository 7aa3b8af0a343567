// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package sampler serves random presentation batches for judging.
//
// The sampler is the discovery surface: instead of forcing the user to
// search a flat catalog, it deals random batches of unjudged items and
// remembers what it recently dealt so consecutive batches feel fresh.
// It also keeps a navigable batch history, so "previous" returns the
// exact batch the user just left and "next" replays forward history
// before sampling anything new.
package sampler
