package retention

import (
	"context"
	"sync"
	"testing"
	"time"

	"durableq/pkg/dlq"

	"github.com/stretchr/testify/require"
)

type countingSink struct {
	mu      sync.Mutex
	inserts int
}

func (s *countingSink) Insert(ctx context.Context, table string, records []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts += len(records)
	return nil
}

func TestStartDisabledIsNoop(t *testing.T) {
	sink := &countingSink{}
	cancel := Start[string](context.Background(), dlq.Config{Enabled: false}, sink)
	cancel()
}

func TestStartDrainsOnStartup(t *testing.T) {
	base := t.TempDir()
	_, err := dlq.Persist(base, "t", []string{"a", "b"}, time.Now().UTC())
	require.NoError(t, err)

	sink := &countingSink{}
	cfg := dlq.Config{
		Enabled:             true,
		BasePath:            base,
		ReplayOnStartup:     true,
		ReplayIntervalSecs:  3600,
		CleanupIntervalSecs: 3600,
		Tables:              []string{"t"},
	}

	cancel := Start[string](context.Background(), cfg, sink)
	defer cancel()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Equal(t, 2, sink.inserts)
}

func TestRunImmediateReplayTickUsesLastStarted(t *testing.T) {
	base := t.TempDir()
	_, err := dlq.Persist(base, "t", []string{"x"}, time.Now().UTC())
	require.NoError(t, err)

	sink := &countingSink{}
	cfg := dlq.Config{
		Enabled:             true,
		BasePath:            base,
		ReplayIntervalSecs:  3600,
		CleanupIntervalSecs: 3600,
		Tables:              []string{"t"},
	}
	cancel := Start[string](context.Background(), cfg, sink)
	defer cancel()

	RunImmediateReplayTick()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Equal(t, 1, sink.inserts)
}
