// Package pebblesink is a reference implementation of dlq.Sink, backed by
// a local Pebble database. The production ingest sink is named only by
// the dlq.Sink contract; this one exists so ingestd and the test suite
// have something concrete to replay batches into.
package pebblesink

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"durableq/pkg/logger"

	"github.com/cockroachdb/pebble"
)

// Sink stores records as JSON values keyed by table/timestamp/seq, so
// replayed batches are trivially inspectable with any pebble-compatible
// CLI. seq breaks ties when multiple records land in the same
// nanosecond.
type Sink[T any] struct {
	db  *pebble.DB
	seq uint64
}

// Open opens (or creates) a Pebble database at path for use as a
// replay destination.
func Open[T any](path string) (*Sink[T], error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebblesink_open_failed", "path", path, "error", err)
		return nil, fmt.Errorf("open pebble sink at %s: %w", path, err)
	}
	return &Sink[T]{db: db}, nil
}

// Close closes the underlying database.
func (s *Sink[T]) Close() error {
	return s.db.Close()
}

// Insert writes every record in the batch as its own key. It satisfies
// dlq.Sink[T].
func (s *Sink[T]) Insert(ctx context.Context, table string, records []T) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := atomic.AddUint64(&s.seq, 1)
		key := fmt.Sprintf("%s/%s/%020d", table, now.Format(time.RFC3339Nano), n)
		value, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record for %s: %w", table, err)
		}
		if err := batch.Set([]byte(key), value, nil); err != nil {
			return fmt.Errorf("stage record for %s: %w", table, err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit batch for %s: %w", table, err)
	}
	return nil
}

// Count returns the number of keys under table's prefix, i.e. how many
// records Insert has accumulated for table.
func (s *Sink[T]) Count(table string) (int, error) {
	prefix := []byte(table + "/")
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if len(iter.Key()) < len(prefix) || string(iter.Key()[:len(prefix)]) != string(prefix) {
			break
		}
		n++
	}
	return n, iter.Error()
}
