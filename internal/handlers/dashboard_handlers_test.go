package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateRangePresets(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{"today",
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			"Today"},
		{"yesterday",
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			"Yesterday"},
		{"last7days",
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			"Last 7 Days"},
		{"last30days",
			time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			"Last 30 Days"},
		{"thismonth",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			"This Month"},
		{"lastmonth",
			time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			"Last Month"},
		{"thisyear",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			"This Year"},
		{"lastyear",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			"Last Year"},
	}
	for _, tc := range tests {
		start, end, label, err := resolveDateRange(tc.name, "", "", now)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.wantStart, start, tc.name)
		assert.Equal(t, tc.wantEnd, end, tc.name)
		assert.Equal(t, tc.wantLabel, label, tc.name)
	}
}

func TestResolveDateRangeDefaultsToLast30Days(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	start, end, label, err := resolveDateRange("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "Last 30 Days", label)
}

func TestResolveDateRangeCustom(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	start, end, label, err := resolveDateRange("custom", "2025-03-01", "2025-03-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	// End is exclusive: the full last day is included
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, "Mar 1, 2025 to Mar 31, 2025", label)

	_, _, _, err = resolveDateRange("custom", "2025-03-31", "2025-03-01", now)
	assert.Error(t, err)

	_, _, _, err = resolveDateRange("custom", "not-a-date", "2025-03-01", now)
	assert.Error(t, err)
}

func TestResolveDateRangeUnknownPreset(t *testing.T) {
	_, _, _, err := resolveDateRange("fortnight", "", "", time.Now())
	assert.Error(t, err)
}
