package dlq

import (
	"context"
	"time"

	"durableq/pkg/envelope"
	"durableq/pkg/logger"
	"durableq/pkg/metrics"
)

// Sink is the destination a Replayer inserts recovered batches into. The
// real ingest sink is named only by this contract; the reference
// implementation in internal/pebblesink exists for local testing and the
// ingestd demo process.
type Sink[T any] interface {
	Insert(ctx context.Context, table string, records []T) error
}

// ReplayStats summarizes a single drain or tick pass.
type ReplayStats struct {
	Replayed      int
	FailedBatches int
	FailedRecords int
}

// Replayer drains persisted batches for one table back into a Sink.
type Replayer[T any] struct {
	Sink  Sink[T]
	Base  string
	Table string
}

// NewReplayer constructs a Replayer for the given table.
func NewReplayer[T any](sink Sink[T], base, table string) *Replayer[T] {
	return &Replayer[T]{Sink: sink, Base: base, Table: table}
}

// Drain replays every persisted batch for the table, oldest-first,
// unbounded. It is intended to run once at process startup, before the
// background tick loop takes over. Each batch gets up to 5 insert
// attempts before it is left on disk for a later tick.
func (r *Replayer[T]) Drain(ctx context.Context) (ReplayStats, error) {
	paths, err := List(r.Base, r.Table)
	if err != nil {
		return ReplayStats{}, err
	}
	return r.replayPaths(ctx, paths, 5)
}

// Tick replays at most the 10 oldest persisted batches for the table. It
// is intended to run on a periodic timer; bounding the batch count per
// tick keeps any single tick from blocking the next one indefinitely.
// Each batch gets up to 3 insert attempts before it is left for the next
// tick.
func (r *Replayer[T]) Tick(ctx context.Context) (ReplayStats, error) {
	paths, err := List(r.Base, r.Table)
	if err != nil {
		return ReplayStats{}, err
	}
	if len(paths) > 10 {
		paths = paths[:10]
	}
	return r.replayPaths(ctx, paths, 3)
}

func (r *Replayer[T]) replayPaths(ctx context.Context, paths []string, maxRetries int) (ReplayStats, error) {
	var stats ReplayStats
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		env, err := LoadEnvelope(path)
		if err != nil {
			logger.Error("dlq_replay_load_error", "path", path, "error", err)
			stats.FailedBatches++
			stats.FailedRecords += env.RecordCount
			continue
		}

		records, err := envelope.DecodeRecords[T](env)
		if err != nil {
			logger.Error("dlq_replay_decode_error", "path", path, "error", err)
			stats.FailedBatches++
			stats.FailedRecords += env.RecordCount
			continue
		}

		if err := r.insertWithRetries(ctx, records, maxRetries); err != nil {
			logger.Error("dlq_replay_insert_error", "path", path, "table", r.Table, "error", err)
			stats.FailedBatches++
			stats.FailedRecords += len(records)
			continue
		}

		if err := Delete(path); err != nil {
			logger.Error("dlq_replay_delete_error", "path", path, "error", err)
			stats.FailedBatches++
			continue
		}

		stats.Replayed += len(records)
	}
	metrics.ObserveReplay(r.Table, stats.Replayed, stats.FailedBatches)
	return stats, nil
}

// insertWithRetries calls Sink.Insert, retrying unconditionally (no error
// classification) with a 2^attempt second backoff between attempts, up to
// maxRetries total attempts.
func (r *Replayer[T]) insertWithRetries(ctx context.Context, records []T, maxRetries int) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := r.Sink.Insert(ctx, r.Table, records); err != nil {
			lastErr = err
			logger.Warn("dlq_replay_insert_retry", "table", r.Table, "attempt", attempt+1, "error", err)
			continue
		}
		return nil
	}
	return lastErr
}
