package services

import (
	"fmt"
	"time"
)

// weekWindow resolves an ISO-8601 (year, week) pair to its Monday-start
// window. Week 1 is the week containing January 4. The 7-day window is
// returned as the half-open timestamp range [start, end) in UTC, so every
// instant of the seventh day is inside it.
func weekWindow(year, week int) (time.Time, time.Time, error) {
	if year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year %d", year)
	}
	if week < 1 || week > isoWeeksInYear(year) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week %d for year %d", week, year)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)

	start := week1Monday.AddDate(0, 0, (week-1)*7)
	end := start.AddDate(0, 0, 7)
	return start, end, nil
}

func isoWeeksInYear(year int) int {
	// December 28 is always in the last ISO week of its year.
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
