package dlq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCleanupNoopWhenDisabled(t *testing.T) {
	cfg := Config{Enabled: false}
	stats := RunCleanup(cfg, time.Now())
	require.Zero(t, stats)
}

func TestRunCleanupDeletesExpired(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	old, err := Persist(base, "t", []metric{{Name: "old"}}, now.Add(-48*time.Hour))
	require.NoError(t, err)
	fresh, err := Persist(base, "t", []metric{{Name: "fresh"}}, now.Add(-time.Hour))
	require.NoError(t, err)

	cfg := Config{Enabled: true, BasePath: base, BatchTTLHours: 24, MaxDiskMB: 1024, Tables: []string{"t"}}
	stats := RunCleanup(cfg, now)

	require.Equal(t, 1, stats.ExpiredDeleted)
	require.NoFileExists(t, old)
	require.FileExists(t, fresh)
}

func TestRunCleanupEnforcesQuotaOldestFirst(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()

	oldest, err := Persist(base, "t", []metric{{Name: "a", Value: 1}}, now.Add(-3*time.Second))
	require.NoError(t, err)
	_, err = Persist(base, "t", []metric{{Name: "b", Value: 2}}, now.Add(-2*time.Second))
	require.NoError(t, err)
	newest, err := Persist(base, "t", []metric{{Name: "c", Value: 3}}, now.Add(-1*time.Second))
	require.NoError(t, err)

	// MaxDiskMB of 0 forces every file over quota; BatchTTLHours large
	// enough that the age sweep doesn't also claim them, isolating the
	// quota sweep's oldest-first behavior.
	cfg := Config{Enabled: true, BasePath: base, BatchTTLHours: 24 * 365, MaxDiskMB: 0, Tables: []string{"t"}}
	stats := RunCleanup(cfg, now)

	require.Greater(t, stats.QuotaDeleted, 0)
	require.NoFileExists(t, oldest)
	_ = newest
}
