// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/judgment"
	"github.com/reelpick/reelpick/internal/models"
	"github.com/reelpick/reelpick/internal/recommend"
	"github.com/reelpick/reelpick/internal/sampler"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Server wires the engine components behind the HTTP surface.
type Server struct {
	catalog   *catalog.Store
	judgments *judgment.Store
	generator *recommend.Generator
	sampler   *sampler.Sampler
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewServer creates the HTTP server facade over the engine.
func NewServer(cat *catalog.Store, judgments *judgment.Store, gen *recommend.Generator, smp *sampler.Sampler, logger zerolog.Logger) *Server {
	return &Server{
		catalog:   cat,
		judgments: judgments,
		generator: gen,
		sampler:   smp,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// judgmentRequest is the body for recording a judgment.
type judgmentRequest struct {
	Verdict string   `json:"verdict" validate:"required,oneof=like dislike neutral"`
	Note    string   `json:"note" validate:"max=2000"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=40"`
}

// batchPayload is the response body for batch navigation endpoints.
type batchPayload struct {
	Items       []models.Item `json:"items"`
	HasPrevious bool          `json:"hasPrevious"`
	HasNext     bool          `json:"hasNext"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"catalog":   s.catalog.Len(),
		"judgments": s.judgments.Len(),
	}, start)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit",
				"limit must be a positive integer", raw)
			return
		}
		limit = parsed
	}

	result := s.generator.Recommend(limit)
	respondJSON(w, r, http.StatusOK, result, start)
}

func (s *Server) handleRecordJudgment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID := chi.URLParam(r, "itemID")

	if _, ok := s.catalog.Get(itemID); !ok {
		respondError(w, r, http.StatusNotFound, "item_not_found",
			"no catalog item with this id", itemID)
		return
	}

	var req judgmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body",
			"request body must be valid JSON", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_judgment",
			"judgment payload failed validation", err.Error())
		return
	}

	verdict, err := models.ParseVerdict(req.Verdict)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_judgment", err.Error(), req.Verdict)
		return
	}

	j := s.judgments.Record(r.Context(), itemID, verdict, req.Note, req.Tags)
	respondJSON(w, r, http.StatusOK, j, start)
}

func (s *Server) handleRemoveJudgment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID := chi.URLParam(r, "itemID")

	removed := s.judgments.Remove(r.Context(), itemID)
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"itemId":  itemID,
		"removed": removed,
	}, start)
}

func (s *Server) handleListJudgments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"judgments": s.judgments.All(),
		"counts":    s.judgments.CountByVerdict(),
	}, start)
}

func (s *Server) handleClearJudgments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cleared := s.judgments.Len()
	s.judgments.Clear(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"cleared": cleared,
	}, start)
}

func (s *Server) handleJudgmentStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	counts := s.judgments.CountByVerdict()
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"counts": counts,
		"total":  counts.Total(),
	}, start)
}

func (s *Server) handleNextBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	items, err := s.sampler.Next()
	if err != nil {
		if errors.Is(err, sampler.ErrExhausted) {
			respondError(w, r, http.StatusConflict, "catalog_exhausted",
				"every catalog item has been judged", "")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "sampler_error",
			"failed to sample a batch", err.Error())
		return
	}

	respondJSON(w, r, http.StatusOK, batchPayload{
		Items:       items,
		HasPrevious: s.sampler.HasPrevious(),
		HasNext:     s.sampler.HasNext(),
	}, start)
}

func (s *Server) handlePreviousBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	items, ok := s.sampler.Previous()
	if !ok {
		respondError(w, r, http.StatusNotFound, "no_previous_batch",
			"no earlier batch in history", "")
		return
	}

	respondJSON(w, r, http.StatusOK, batchPayload{
		Items:       items,
		HasPrevious: s.sampler.HasPrevious(),
		HasNext:     s.sampler.HasNext(),
	}, start)
}

func (s *Server) handleRefreshBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	items, err := s.sampler.Refresh()
	if err != nil {
		if errors.Is(err, sampler.ErrExhausted) {
			respondError(w, r, http.StatusConflict, "catalog_exhausted",
				"every catalog item has been judged", "")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "sampler_error",
			"failed to sample a batch", err.Error())
		return
	}

	respondJSON(w, r, http.StatusOK, batchPayload{
		Items:       items,
		HasPrevious: s.sampler.HasPrevious(),
		HasNext:     s.sampler.HasNext(),
	}, start)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondJSON(w, r, http.StatusOK, s.judgments.BuildExport(s.catalog), start)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID := chi.URLParam(r, "itemID")

	item, ok := s.catalog.Get(itemID)
	if !ok {
		respondError(w, r, http.StatusNotFound, "item_not_found",
			"no catalog item with this id", itemID)
		return
	}

	data := map[string]interface{}{"item": item}
	if j, ok := s.judgments.Get(itemID); ok {
		data["judgment"] = j
	}
	respondJSON(w, r, http.StatusOK, data, start)
}
