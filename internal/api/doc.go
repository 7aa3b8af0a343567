// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package api exposes the Reelpick engine over a local HTTP surface.
//
// All endpoints live under /api/v1 and return the standard JSON
// envelope: {"status", "data", "metadata", "error"}. The server binds
// to loopback by default; there is no authentication because there are
// no accounts — the engine is single-user and local-first.
package api
