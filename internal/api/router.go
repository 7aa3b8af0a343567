// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/reelpick/reelpick/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the full HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.logMiddleware)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)

		r.Route("/judgments", func(r chi.Router) {
			r.Get("/", s.handleListJudgments)
			r.Delete("/", s.handleClearJudgments)
			r.Get("/stats", s.handleJudgmentStats)
			r.Post("/{itemID}", s.handleRecordJudgment)
			r.Delete("/{itemID}", s.handleRemoveJudgment)
		})

		r.Route("/batches", func(r chi.Router) {
			r.Post("/next", s.handleNextBatch)
			r.Post("/previous", s.handlePreviousBatch)
			r.Post("/refresh", s.handleRefreshBatch)
		})

		r.Get("/export", s.handleExport)
		r.Get("/items/{itemID}", s.handleGetItem)
	})

	return r
}

// requestIDMiddleware attaches a UUID correlation ID to each request
// and echoes it in the X-Request-ID response header.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logMiddleware emits one structured line per request.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", requestID(r)).
			Msg("http request")
	})
}

// metricsMiddleware records request latency histograms keyed by the
// chi route pattern, not the raw path, to keep label cardinality flat.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, pattern, ww.Status(), time.Since(start))
	})
}
