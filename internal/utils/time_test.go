package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Formats(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []string{
		"2024-01-01T00:00:00+00:00",
		"2024-01-01 00:00:00+00:00",
		"2024-01-01T00:00:00Z",
		"2024-01-01 00:00:00",
		"2024-01-01",
		"2023-12-31T16:00:00-08:00",
	} {
		got, ok := ParseTimestamp(s)
		require.True(t, ok, s)
		assert.True(t, want.Equal(got), "%s parsed as %s", s, got)
	}
}

func TestParseTimestamp_Rejects(t *testing.T) {
	for _, v := range []any{"", "   ", "not a date", 12, nil, true} {
		_, ok := ParseTimestamp(v)
		assert.False(t, ok, "%v", v)
	}
}

func TestParseTimestamp_TimeValue(t *testing.T) {
	now := time.Now()
	got, ok := ParseTimestamp(now)
	assert.True(t, ok)
	assert.True(t, now.Equal(got))

	var nilTime *time.Time
	_, ok = ParseTimestamp(nilTime)
	assert.False(t, ok)
}

func TestFormatInLocation(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	ts := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01T00:00:00-08:00", FormatInLocation(ts, la))
	assert.Equal(t, "2024-01-01T08:00:00Z", FormatInLocation(ts, nil))
}
