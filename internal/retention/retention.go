// Package retention schedules the durability queue's periodic replay and
// cleanup passes. It is the background half of the queue: pkg/dlq itself
// exposes only individual operations (Tick, RunCleanup); this package
// decides when to call them and keeps them running under supervision.
package retention

import (
	"context"
	"time"

	"durableq/pkg/dlq"
	"durableq/pkg/logger"
)

var (
	storedTick  func(ctx context.Context)
	storedClean func(ctx context.Context)
)

// RunImmediateCleanup triggers a single cleanup pass using the most
// recently Start-ed configuration. Intended for tests and admin tooling,
// not the steady-state loop.
func RunImmediateCleanup() {
	if storedClean == nil {
		return
	}
	storedClean(context.Background())
}

// RunImmediateReplayTick triggers a single replay tick using the most
// recently Start-ed configuration.
func RunImmediateReplayTick() {
	if storedTick == nil {
		return
	}
	storedTick(context.Background())
}

// Start launches the supervised replay-tick and cleanup loops for every
// table in cfg.Tables, against sink. It returns a cancel func; canceling
// it stops both loops. If cfg.ReplayOnStartup is set, Start first performs
// a synchronous Drain per table before the tick loop takes over.
func Start[T any](ctx context.Context, cfg dlq.Config, sink dlq.Sink[T]) context.CancelFunc {
	if !cfg.Enabled {
		logger.Info("dlq_retention_disabled")
		return func() {}
	}

	ctx2, cancel := context.WithCancel(ctx)

	if cfg.ReplayOnStartup {
		drainAll(ctx2, cfg, sink)
	}

	tick := func(c context.Context) { replayTickAll(c, cfg, sink) }
	clean := func(c context.Context) { dlq.RunCleanup(cfg, time.Now().UTC()) }
	storedTick, storedClean = tick, clean

	go dlq.Supervise(ctx2, "dlq-replay", func(c context.Context) error {
		return runLoop(c, time.Duration(cfg.ReplayIntervalSecs)*time.Second, 30*time.Second, tick)
	})
	go dlq.Supervise(ctx2, "dlq-cleanup", func(c context.Context) error {
		return runLoop(c, time.Duration(cfg.CleanupIntervalSecs)*time.Second, 300*time.Second, clean)
	})

	logger.Info("dlq_retention_started",
		"base_path", cfg.BasePath,
		"replay_interval_secs", cfg.ReplayIntervalSecs,
		"cleanup_interval_secs", cfg.CleanupIntervalSecs,
	)
	return cancel
}

func runLoop(ctx context.Context, interval, fallback time.Duration, fn func(context.Context)) error {
	if interval <= 0 {
		interval = fallback
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func drainAll[T any](ctx context.Context, cfg dlq.Config, sink dlq.Sink[T]) {
	for _, table := range cfg.Tables {
		r := dlq.NewReplayer[T](sink, cfg.BasePath, table)
		stats, err := r.Drain(ctx)
		if err != nil {
			logger.Error("dlq_startup_drain_error", "table", table, "error", err)
			continue
		}
		logger.Info("dlq_startup_drain_complete", "table", table,
			"replayed", stats.Replayed, "failed_batches", stats.FailedBatches)
	}
}

func replayTickAll[T any](ctx context.Context, cfg dlq.Config, sink dlq.Sink[T]) {
	for _, table := range cfg.Tables {
		r := dlq.NewReplayer[T](sink, cfg.BasePath, table)
		if _, err := r.Tick(ctx); err != nil {
			logger.Error("dlq_replay_tick_error", "table", table, "error", err)
		}
	}
}
