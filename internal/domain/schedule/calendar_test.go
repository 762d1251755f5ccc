package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestMonthDays_NeverBeforeToday(t *testing.T) {
	today := date(2025, time.September, 10)

	days := MonthDays(2025, time.September, today)

	require.NotEmpty(t, days)
	assert.Equal(t, "2025-09-10", days[0].ISO, "hoy se incluye aunque ya sea la tarde")
	for _, d := range days {
		assert.GreaterOrEqual(t, d.ISO, "2025-09-10")
	}
}

func TestMonthDays_AllWithinMonth(t *testing.T) {
	today := date(2025, time.August, 1)

	days := MonthDays(2025, time.September, today)

	require.Len(t, days, 30)
	for _, d := range days {
		assert.Equal(t, "2025-09", d.ISO[:7])
	}
}

func TestMonthDays_PastMonthIsEmpty(t *testing.T) {
	today := date(2025, time.September, 10)

	assert.Empty(t, MonthDays(2025, time.August, today))
}

func TestMonthDays_SpanishLabels(t *testing.T) {
	today := date(2025, time.August, 1)

	days := MonthDays(2025, time.September, today)

	// 2025-09-01 es lunes.
	require.NotEmpty(t, days)
	assert.Equal(t, "lun 01 sep", days[0].Label)
	assert.Equal(t, 1, days[0].Weekday)

	// 2025-09-07 es domingo.
	assert.Equal(t, "dom 07 sep", days[6].Label)
	assert.Equal(t, 7, days[6].Weekday)
}

func TestMonthAt_Offset(t *testing.T) {
	today := date(2025, time.November, 20)

	y, m := MonthAt(today, 0)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.November, m)

	y, m = MonthAt(today, 2)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m, "el offset cruza el fin de año")
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "septiembre 2025", MonthLabel(2025, time.September))
}

func TestNormalizeWeekday(t *testing.T) {
	assert.Equal(t, 7, NormalizeWeekday(time.Sunday))
	assert.Equal(t, 1, NormalizeWeekday(time.Monday))
	assert.Equal(t, 6, NormalizeWeekday(time.Saturday))
}
