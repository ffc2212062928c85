package services

import (
	"testing"
	"time"
)

func TestWeekWindow(t *testing.T) {
	cases := []struct {
		name      string
		year      int
		week      int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "2024_week_1_starts_on_new_year",
			year:      2024,
			week:      1,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "2026_week_1_starts_in_previous_year",
			year:      2026,
			week:      1,
			wantStart: time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "2020_week_53_crosses_year_boundary",
			year:      2020,
			week:      53,
			wantStart: time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "2024_week_10",
			year:      2024,
			week:      10,
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := weekWindow(tc.year, tc.week)
			if err != nil {
				t.Fatalf("weekWindow(%d, %d) error: %v", tc.year, tc.week, err)
			}
			if !start.Equal(tc.wantStart) {
				t.Fatalf("start = %v, want %v", start, tc.wantStart)
			}
			if !end.Equal(tc.wantEnd) {
				t.Fatalf("end = %v, want %v", end, tc.wantEnd)
			}
			if start.Weekday() != time.Monday {
				t.Fatalf("window does not start on Monday: %v", start.Weekday())
			}
		})
	}
}

func TestWeekWindowRejectsInvalidWeeks(t *testing.T) {
	cases := []struct {
		name string
		year int
		week int
	}{
		{name: "week_zero", year: 2024, week: 0},
		{name: "negative_week", year: 2024, week: -3},
		{name: "week_53_in_52_week_year", year: 2024, week: 53},
		{name: "week_54_in_53_week_year", year: 2020, week: 54},
		{name: "year_zero", year: 0, week: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := weekWindow(tc.year, tc.week); err == nil {
				t.Fatalf("weekWindow(%d, %d) accepted an invalid week", tc.year, tc.week)
			}
		})
	}
}

func TestIsoWeeksInYear(t *testing.T) {
	cases := []struct {
		year int
		want int
	}{
		{year: 2020, want: 53},
		{year: 2024, want: 52},
		{year: 2026, want: 53},
	}
	for _, tc := range cases {
		if got := isoWeeksInYear(tc.year); got != tc.want {
			t.Fatalf("isoWeeksInYear(%d) = %d, want %d", tc.year, got, tc.want)
		}
	}
}
