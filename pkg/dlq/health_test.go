package dlq

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsZeroWhenDisabled(t *testing.T) {
	stats, err := Stats(Config{Enabled: false})
	require.NoError(t, err)
	require.Zero(t, stats)
}

// TestStatsEstimatesRecordsPendingFromFileSize pins RecordsPending to the
// byte_size/1024 proxy, not an exact record count: Stats must never
// deserialize a batch to compute it.
func TestStatsEstimatesRecordsPendingFromFileSize(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()
	_, err := Persist(base, "t", []metric{{Name: "a"}, {Name: "b"}}, now)
	require.NoError(t, err)
	_, err = Persist(base, "t", []metric{{Name: "c"}}, now.Add(time.Second))
	require.NoError(t, err)

	paths, err := List(base, "t")
	require.NoError(t, err)
	require.Len(t, paths, 2)

	wantRecordsPending := 0
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		wantRecordsPending += int(info.Size() / 1024)
	}

	cfg := Config{Enabled: true, BasePath: base, Tables: []string{"t"}}
	stats, err := Stats(cfg)
	require.NoError(t, err)
	require.Equal(t, 2, stats.BatchesPending)
	require.Equal(t, wantRecordsPending, stats.RecordsPending)
	require.Greater(t, stats.DiskUsageMB, 0.0)
}
