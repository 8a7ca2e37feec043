package pebblesink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestInsertAndCount(t *testing.T) {
	dir := t.TempDir()
	sink, err := Open[point](filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Insert(context.Background(), "mlop_metrics", []point{
		{Name: "cpu", Value: 1},
		{Name: "mem", Value: 2},
	})
	require.NoError(t, err)

	n, err := sink.Count("mlop_metrics")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = sink.Count("other_table")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestInsertRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	sink, err := Open[point](filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sink.Insert(ctx, "t", []point{{Name: "a"}})
	require.Error(t, err)
}
