package envelope

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

func TestRoundTrip(t *testing.T) {
	records := []sample{{Name: "cpu", Value: 1.5}, {Name: "mem", Value: 2.5}}
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	env, err := New("mlop_metrics", records, ts)
	require.NoError(t, err)
	require.Equal(t, "mlop_metrics", env.Table)
	require.Equal(t, 2, env.RecordCount)

	data, err := Encode(env)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "mlop_metrics", decoded.Table)
	require.Equal(t, 2, decoded.RecordCount)
	require.True(t, decoded.Timestamp.Equal(ts))

	got, err := DecodeRecords[sample](decoded)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestRoundTripNonFiniteFloats(t *testing.T) {
	records := []sample{
		{Name: "nan", Value: math.NaN()},
		{Name: "pinf", Value: math.Inf(1)},
		{Name: "ninf", Value: math.Inf(-1)},
	}
	env, err := New("mlop_metrics", records, time.Now().UTC())
	require.NoError(t, err)

	data, err := Encode(env)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	got, err := DecodeRecords[sample](decoded)
	require.NoError(t, err)
	require.True(t, math.IsNaN(got[0].Value))
	require.True(t, math.IsInf(got[1].Value, 1))
	require.True(t, math.IsInf(got[2].Value, -1))
}

func TestNewRejectsEmptyBatch(t *testing.T) {
	_, err := New[sample]("mlop_metrics", nil, time.Now())
	require.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("not: [valid yaml"))
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecodeRecordCountMismatch(t *testing.T) {
	data := []byte("table: t\ntimestamp: 2024-01-01T00:00:00Z\nrecord_count: 5\nrecords:\n  - name: a\n    value: 1\n")
	_, err := Decode(data)
	require.ErrorIs(t, err, ErrFormat)
}
