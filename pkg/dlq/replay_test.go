package dlq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	failNextN int
	inserts   [][]metric
}

func (f *fakeSink) Insert(ctx context.Context, table string, records []metric) error {
	if f.failNextN > 0 {
		f.failNextN--
		return errors.New("sink unavailable")
	}
	f.inserts = append(f.inserts, records)
	return nil
}

func TestDrainReplaysEverythingOldestFirst(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()
	_, err := Persist(base, "t", []metric{{Name: "a"}}, now.Add(-2*time.Second))
	require.NoError(t, err)
	_, err = Persist(base, "t", []metric{{Name: "b"}}, now.Add(-1*time.Second))
	require.NoError(t, err)

	sink := &fakeSink{}
	r := NewReplayer[metric](sink, base, "t")
	stats, err := r.Drain(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Replayed)
	require.Zero(t, stats.FailedBatches)

	remaining, err := List(base, "t")
	require.NoError(t, err)
	require.Empty(t, remaining)

	require.Len(t, sink.inserts, 2)
	require.Equal(t, "a", sink.inserts[0][0].Name)
	require.Equal(t, "b", sink.inserts[1][0].Name)
}

func TestDrainRetriesAndEventuallySucceeds(t *testing.T) {
	base := t.TempDir()
	_, err := Persist(base, "t", []metric{{Name: "a"}}, time.Now().UTC())
	require.NoError(t, err)

	sink := &fakeSink{failNextN: 2}
	r := NewReplayer[metric](sink, base, "t")

	start := time.Now()
	stats, err := r.Drain(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Replayed)
	require.GreaterOrEqual(t, time.Since(start), 3*time.Second)
}

func TestDrainLeavesBatchOnPersistentFailure(t *testing.T) {
	base := t.TempDir()
	path, err := Persist(base, "t", []metric{{Name: "a"}}, time.Now().UTC())
	require.NoError(t, err)

	sink := &fakeSink{failNextN: 100}
	r := NewReplayer[metric](sink, base, "t")
	stats, err := r.Drain(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.FailedBatches)
	require.FileExists(t, path)
}

func TestTickCapsAtTenBatches(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()
	for i := 0; i < 15; i++ {
		_, err := Persist(base, "t", []metric{{Name: "x"}}, now.Add(time.Duration(i)*time.Millisecond))
		require.NoError(t, err)
	}

	sink := &fakeSink{}
	r := NewReplayer[metric](sink, base, "t")
	stats, err := r.Tick(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, stats.Replayed)

	remaining, err := List(base, "t")
	require.NoError(t, err)
	require.Len(t, remaining, 5)
}
