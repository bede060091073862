package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMY(t *testing.T) {
	d, err := ParseDMY("15-07-2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", Key(d))

	for _, bad := range []string{"2025-07-15", "15/07/2025", "5-7-2025", "32-01-2025", "15-13-2025", "", "yesterday"} {
		_, err := ParseDMY(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormats(t *testing.T) {
	d := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "15-07-2025", FormatDMY(d))
	assert.Equal(t, "15-Jul-2025", FormatLong(d))
	assert.Equal(t, "15-Jul", FormatShort(d))
	assert.Equal(t, "15-07-2025", KeyToDMY("2025-07-15"))
	// unparseable keys pass through
	assert.Equal(t, "garbage", KeyToDMY("garbage"))
}

func TestIsRestDay(t *testing.T) {
	sunday := time.Date(2025, time.July, 13, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.True(t, IsRestDay(sunday))
	assert.False(t, IsRestDay(sunday.AddDate(0, 0, 1)))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2025, time.February, 11, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-02-01", Key(first))
	assert.Equal(t, "2025-02-28", Key(last))
}

// Ten consecutive days with one holiday and one Sunday inside leave eight
// working days.
func TestWorkingDays(t *testing.T) {
	start := time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC) // Monday
	end := start.AddDate(0, 0, 9)
	holiday := Key(start.AddDate(0, 0, 3)) // Thursday 10th

	days := WorkingDays(start, end, map[string]bool{holiday: true})
	require.Len(t, days, 8)
	assert.NotContains(t, days, holiday)
	assert.NotContains(t, days, "2025-07-13") // the Sunday in range
}
