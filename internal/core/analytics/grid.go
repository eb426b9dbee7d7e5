// Package analytics turns dated habit records into calendar heatmaps, streaks,
// rolling-window trends and cost projections.
//
// Every function here is a pure function of its arguments: nothing reads the
// clock, touches storage or mutates its input. Time-relative computations take
// an explicit asOf day instead of "now".
package analytics

import (
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// WeeksPerGrid is the number of week rows every yearly grid has at least.
const WeeksPerGrid = 53

const (
	minYear = 1
	maxYear = 9999
)

// BuildYearGrid lays out a year as week rows starting on the Sunday on or
// before January 1st. Slots from the neighbouring years are kept for layout
// and flagged OutOfYear.
//
// The grid is WeeksPerGrid rows, except for leap years starting on a
// Saturday, where December 31st only fits in a 54th row.
func BuildYearGrid(year int) (domain.YearGrid, error) {
	if err := validateYear(year); err != nil {
		return domain.YearGrid{}, err
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	start := jan1.AddDate(0, 0, -int(jan1.Weekday()))

	weeks := WeeksPerGrid
	if needed := domain.DaysBetween(start, dec31)/7 + 1; needed > weeks {
		weeks = needed
	}

	grid := domain.YearGrid{
		Year:  year,
		Weeks: make([]domain.WeekRow, weeks),
	}

	for w := range grid.Weeks {
		rowStart := start.AddDate(0, 0, w*7)
		row := domain.WeekRow{Start: rowStart}

		for d := 0; d < 7; d++ {
			date := rowStart.AddDate(0, 0, d)
			row.Days[d] = domain.GridSlot{
				Date:      date,
				OutOfYear: date.Year() != year,
			}
		}

		// Exactly one Sunday falls on days 1-7 of each month.
		if rowStart.Year() == year && rowStart.Day() <= 7 {
			row.MonthLabel = rowStart.Month()
		}

		grid.Weeks[w] = row
	}

	return grid, nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return domain.NewInvalidInput("year", "must be between 1 and 9999")
	}
	return nil
}
