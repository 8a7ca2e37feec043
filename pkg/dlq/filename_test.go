package dlq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildNameRoundTripsTimestamp(t *testing.T) {
	ts := time.Date(2024, 6, 15, 9, 30, 45, 123_000_000, time.UTC)
	name := buildName(ts)
	require.Contains(t, name, "2024-06-15T09-30-45.123_")
	require.Contains(t, name, Extension)

	parsed, err := parseNameTimestamp(name)
	require.NoError(t, err)
	require.True(t, ts.Equal(parsed))
}

func TestBuildNameOrderingIsChronological(t *testing.T) {
	earlier := buildName(time.Date(2024, 6, 15, 9, 30, 45, 0, time.UTC))
	later := buildName(time.Date(2024, 6, 15, 9, 30, 46, 0, time.UTC))
	require.Less(t, earlier, later)
}

func TestParseNameTimestampRejectsMalformed(t *testing.T) {
	_, err := parseNameTimestamp("not-a-valid-name.batch")
	require.Error(t, err)
}
