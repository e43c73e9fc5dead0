package forecast

import "time"

// holidayDemandFactor is the multiplicative demand boost inside a holiday window.
const holidayDemandFactor = 1.15

// EasterSunday computes the Gregorian-calendar date of Easter Sunday for a
// year using the anonymous Gauss algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// HolidayFactor returns the seasonal demand multiplier for the given date:
// 1.15 inside [Easter - leadDays, Easter + 7 days] or [Dec 24 - leadDays,
// Dec 26], 1.0 otherwise. Both windows are evaluated against the year of now,
// at day granularity with inclusive bounds.
func HolidayFactor(now time.Time, leadDays int) float64 {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	easter := EasterSunday(now.Year())
	if inWindow(day, easter.AddDate(0, 0, -leadDays), easter.AddDate(0, 0, 7)) {
		return holidayDemandFactor
	}

	christmasEve := time.Date(now.Year(), time.December, 24, 0, 0, 0, 0, time.UTC)
	if inWindow(day, christmasEve.AddDate(0, 0, -leadDays), christmasEve.AddDate(0, 0, 2)) {
		return holidayDemandFactor
	}

	return 1.0
}

func inWindow(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
