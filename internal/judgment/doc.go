// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package judgment owns the user's accumulated verdicts.
//
// The store is the sole writer of judgment state. Mutations are applied
// synchronously to in-memory state in the order they are issued; durable
// persistence is best-effort and may lag, but never blocks or fails a
// mutation. Memory is the source of truth for the current session.
//
// All reads return snapshots (copies), so a judgment recorded while a
// scoring or sampling pass is running cannot corrupt that pass; it is
// simply reflected in the next one.
package judgment
