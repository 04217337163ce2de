package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var wednesday = time.Date(2025, 6, 18, 14, 30, 0, 0, time.Local)

func TestResolveDateRange_Today(t *testing.T) {
	r := ResolveDateRange(DateFilterToday, "", "", wednesday)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Date(2025, 6, 18, 23, 59, 59, 999000000, time.Local), r.To)
}

func TestResolveDateRange_ThisWeekStartsOnMonday(t *testing.T) {
	r := ResolveDateRange(DateFilterThisWeek, "", "", wednesday)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Monday, r.From.Weekday())
	assert.Equal(t, time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.Local), r.To)
}

func TestResolveDateRange_ThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2025, 6, 22, 9, 0, 0, 0, time.Local)
	r := ResolveDateRange(DateFilterThisWeek, "", "", sunday)
	require.NotNil(t, r)

	// A Sunday still belongs to the week that started the previous Monday
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.Local), r.To)
}

func TestResolveDateRange_ThisMonth(t *testing.T) {
	r := ResolveDateRange(DateFilterThisMonth, "", "", wednesday)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 999000000, time.Local), r.To)
}

func TestResolveDateRange_CustomRange(t *testing.T) {
	r := ResolveDateRange(DateFilterCustom, "2025-01-10", "2025-01-20", wednesday)
	require.NotNil(t, r)

	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local), r.From)
	assert.Equal(t, time.Date(2025, 1, 20, 23, 59, 59, 999000000, time.Local), r.To)
}

func TestResolveDateRange_CustomMissingBoundsFallsBackToToday(t *testing.T) {
	for _, tc := range []struct{ start, end string }{
		{"", ""},
		{"2025-01-10", ""},
		{"", "2025-01-20"},
		{"not-a-date", "2025-01-20"},
		{"2025-01-10", "garbage"},
	} {
		r := ResolveDateRange(DateFilterCustom, tc.start, tc.end, wednesday)
		require.NotNil(t, r)
		assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local), r.From,
			"start=%q end=%q", tc.start, tc.end)
		assert.Equal(t, time.Date(2025, 6, 18, 23, 59, 59, 999000000, time.Local), r.To)
	}
}

func TestResolveDateRange_AllAndUnknownAreUnbounded(t *testing.T) {
	assert.Nil(t, ResolveDateRange(DateFilterAll, "", "", wednesday))
	assert.Nil(t, ResolveDateRange(DateFilter(""), "", "", wednesday))
	assert.Nil(t, ResolveDateRange(DateFilter("yesterday"), "", "", wednesday))
}
