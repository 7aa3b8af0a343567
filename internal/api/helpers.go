// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"
	"time"

	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/models"

	"github.com/goccy/go-json"
)

// requestIDKey is the context key for the per-request correlation ID.
type requestIDKey struct{}

// requestID returns the correlation ID attached by the request ID
// middleware, or empty when called outside it.
func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// respondJSON writes a success envelope.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	resp := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			RequestID:   requestID(r),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	}
	writeEnvelope(w, status, resp)
}

// respondError writes an error envelope with a machine-readable code.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message, details string) {
	resp := models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: requestID(r),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	writeEnvelope(w, status, resp)
}

func writeEnvelope(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode response envelope")
	}
}
