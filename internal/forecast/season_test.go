package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEasterSunday_KnownDates(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2030, time.April, 21},
	}

	for _, tc := range cases {
		easter := EasterSunday(tc.year)
		require.Equal(t, tc.year, easter.Year())
		require.Equal(t, tc.month, easter.Month(), "year %d", tc.year)
		require.Equal(t, tc.day, easter.Day(), "year %d", tc.year)
	}
}

func TestHolidayFactor_EasterWindow(t *testing.T) {
	// Easter 2025 is April 20; with 20 lead days the window spans
	// March 31 through April 27.
	lead := 20

	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.April, 27, 23, 0, 0, 0, time.UTC), lead))

	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC), lead))
}

func TestHolidayFactor_ChristmasWindow(t *testing.T) {
	lead := 20

	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.December, 26, 0, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC), lead))

	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC), lead))
	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.December, 27, 0, 0, 0, 0, time.UTC), lead))
}

func TestHolidayFactor_OutsideWindows(t *testing.T) {
	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), 20))
	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), 20))
}

func TestHolidayFactor_ZeroLeadDays(t *testing.T) {
	// Without lead days the Easter window is Easter Sunday itself plus a week.
	require.Equal(t, 1.15, HolidayFactor(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC), 0))
	require.Equal(t, 1.0, HolidayFactor(time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC), 0))
}
