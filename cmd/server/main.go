// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Command server runs the Reelpick engine as a local HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/reelpick/reelpick/internal/api"
	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/judgment"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/recommend"
	"github.com/reelpick/reelpick/internal/sampler"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("dataset", cfg.Catalog.Dataset).
		Str("path", cfg.Catalog.Path()).
		Msg("loading catalog")

	cat, stats, err := catalog.LoadFile(cfg.Catalog.Path(), logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	metrics.RecordDroppedRecords(stats.Dropped)

	var persister judgment.Persister
	if !cfg.Storage.InMemory {
		opts := badger.DefaultOptions(cfg.Storage.Path).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return fmt.Errorf("open judgment storage: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("closing judgment storage")
			}
		}()
		persister = judgment.NewBadgerPersister(db)
	} else {
		logger.Warn().Msg("in-memory storage enabled, judgments will not survive restart")
	}

	judgments := judgment.NewStore(persister, logger)
	if err := judgments.Rehydrate(context.Background()); err != nil {
		return fmt.Errorf("rehydrate judgments: %w", err)
	}

	scorer := recommend.NewScorer(recommend.Weights{
		Genre:     cfg.Recommend.GenreWeight,
		Creator:   cfg.Recommend.CreatorWeight,
		Cast:      cfg.Recommend.CastWeight,
		Year:      cfg.Recommend.YearWeight,
		BestShare: cfg.Recommend.BestShare,
	})
	generator := recommend.NewGenerator(cat, judgments, scorer,
		cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit, logger)

	smp := sampler.New(cat, judgments, sampler.Config{
		MinBatch:     cfg.Sampler.MinBatch,
		MaxBatch:     cfg.Sampler.MaxBatch,
		RecentCap:    cfg.Sampler.RecentCap,
		RecentRetain: cfg.Sampler.RecentRetain,
		Seed:         cfg.Sampler.Seed,
		StarterBias:  cfg.Sampler.StarterBias,
	}, logger)

	server := api.NewServer(cat, judgments, generator, smp, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", addr).
			Int("catalog", cat.Len()).
			Int("judgments", judgments.Len()).
			Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
