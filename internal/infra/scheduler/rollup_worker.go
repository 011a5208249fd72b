// Package scheduler runs the background rollup refresh.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/application/usecase/analytics"
)

// RollupWorker periodically recomputes the previous calendar month's
// rollup for every user. Sweeps are idempotent: each run derives the
// same summaries from the same ledger, so overlapping or repeated runs
// are harmless.
type RollupWorker struct {
	userRepository adapter.UserRepository
	recompute      *analytics.RecomputeRollupUseCase
	pollInterval   time.Duration
	workers        int
	now            func() time.Time
}

// WorkerConfig holds configuration for the rollup worker.
type WorkerConfig struct {
	PollInterval time.Duration
	Workers      int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 1 * time.Hour,
		Workers:      4,
	}
}

// NewRollupWorker creates a new rollup worker.
func NewRollupWorker(userRepository adapter.UserRepository, recompute *analytics.RecomputeRollupUseCase, config WorkerConfig) *RollupWorker {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &RollupWorker{
		userRepository: userRepository,
		recompute:      recompute,
		pollInterval:   config.PollInterval,
		workers:        config.Workers,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *RollupWorker) Start(ctx context.Context) {
	slog.Info("Rollup worker started",
		"poll_interval", w.pollInterval,
		"workers", w.workers,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Sweep immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Rollup worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce recomputes the previous month's rollup for every user. Per
// user failures are logged and skipped; the sweep never aborts early
// except on context cancellation.
func (w *RollupWorker) RunOnce(ctx context.Context) {
	year, month := analytics.PreviousMonth(w.now())

	users, err := w.userRepository.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to load users for rollup sweep", "error", err)
		return
	}
	if len(users) == 0 {
		return
	}

	slog.Debug("Rollup sweep starting", "year", year, "month", month, "users", len(users))

	sem := make(chan struct{}, w.workers)
	var wg sync.WaitGroup

	for _, user := range users {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			_, err := w.recompute.Execute(ctx, analytics.RecomputeRollupInput{
				UserID: userID,
				Year:   year,
				Month:  month,
			})
			if err != nil {
				slog.Error("Failed to recompute rollup",
					"error", err,
					"user_id", userID,
					"year", year,
					"month", month,
				)
			}
		}(user.ID)
	}

	wg.Wait()
	slog.Info("Rollup sweep finished", "year", year, "month", month, "users", len(users))
}
