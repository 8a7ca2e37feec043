package dlq

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type metric struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

func TestPersistAndLoad(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []metric{{Name: "cpu", Value: 0.5}}
	path, err := Persist(base, "mlop_metrics", records, now)
	require.NoError(t, err)
	require.FileExists(t, path)

	env, err := LoadEnvelope(path)
	require.NoError(t, err)
	require.Equal(t, "mlop_metrics", env.Table)
	require.Equal(t, 1, env.RecordCount)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Name(), tmpSuffix)
	}
}

func TestPersistRejectsEmptyBatch(t *testing.T) {
	base := t.TempDir()
	_, err := Persist[metric](base, "mlop_metrics", nil, time.Now())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIO)
}

func TestDeleteMissingIsNotAnError(t *testing.T) {
	base := t.TempDir()
	err := Delete(filepath.Join(base, "does-not-exist.batch"))
	require.NoError(t, err)
}

func TestListSortsAscendingAndIgnoresStrays(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()
	_, err := Persist(base, "t", []metric{{Name: "a"}}, now)
	require.NoError(t, err)
	_, err = Persist(base, "t", []metric{{Name: "b"}}, now.Add(time.Second))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(base, "t", "notes.txt"), []byte("x"), 0o644))

	paths, err := List(base, "t")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.True(t, paths[0] < paths[1])
}

func TestListMissingDirIsEmptyNotError(t *testing.T) {
	base := t.TempDir()
	paths, err := List(base, "never-written")
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestCheckQuota(t *testing.T) {
	base := t.TempDir()
	now := time.Now().UTC()
	_, err := Persist(base, "t", []metric{{Name: "a"}}, now)
	require.NoError(t, err)

	require.NoError(t, CheckQuota(base, 1024, 1))

	err = CheckQuota(base, 0, 1)
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestDiskUsageMissingBaseIsZero(t *testing.T) {
	usage, err := DiskUsage(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Zero(t, usage)
}
