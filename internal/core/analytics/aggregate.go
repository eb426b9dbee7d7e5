package analytics

import (
	"strings"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// Aggregate folds the selected series into one CalendarDay per real day of year.
//
// Every series counts toward TotalCount on every day: a day without a record is
// a day not completed. Entities keep the input order, so identical input gives
// identical output. When a series holds several records for one day, the first
// in slice order is used.
//
// All records are validated before anything is folded; one malformed record
// fails the whole call with an error matching domain.ErrInvalidInput.
func Aggregate(series []domain.CompletionSeries, year int) ([]domain.CalendarDay, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if err := guardSeriesCount(len(series)); err != nil {
		return nil, err
	}
	for i := range series {
		if err := series[i].Validate(); err != nil {
			return nil, err
		}
	}

	dayCount := domain.DaysInYear(year)

	lookups := make([][]*domain.CompletionRecord, len(series))
	for i := range series {
		lookups[i] = indexByYearDay(series[i].Records, year, dayCount)
	}

	days := make([]domain.CalendarDay, dayCount)
	first := startOfYear(year)

	for d := 0; d < dayCount; d++ {
		day := domain.CalendarDay{
			Date:       first.AddDate(0, 0, d),
			TotalCount: len(series),
			Entities:   make([]domain.EntityDetail, len(series)),
		}

		for i := range series {
			s := &series[i]
			rec := lookups[i][d]
			completed := rec != nil && rec.IsCompleted

			if completed {
				day.CompletedCount++
			}

			day.Entities[i] = domain.EntityDetail{
				SeriesID:  s.ID,
				Name:      s.Name,
				Completed: completed,
				Color:     s.Color,
			}

			if rec != nil && strings.TrimSpace(rec.Notes) != "" {
				day.Notes = append(day.Notes, domain.DayNote{
					SeriesID:   s.ID,
					SeriesName: s.Name,
					Text:       rec.Notes,
				})
			}
		}

		if day.TotalCount > 0 {
			day.CompletionRate = float64(day.CompletedCount) / float64(day.TotalCount) * 100
		}
		day.Intensity = Classify(day.CompletionRate)

		days[d] = day
	}

	return days, nil
}

// BuildHeatmap bundles the grid and the aggregated days of a year.
func BuildHeatmap(series []domain.CompletionSeries, year int) (domain.Heatmap, error) {
	grid, err := BuildYearGrid(year)
	if err != nil {
		return domain.Heatmap{}, err
	}

	days, err := Aggregate(series, year)
	if err != nil {
		return domain.Heatmap{}, err
	}

	return domain.Heatmap{
		Year:  year,
		Empty: len(series) == 0,
		Grid:  grid,
		Days:  days,
	}, nil
}

// indexByYearDay returns, per day of year, the first record dated that day.
func indexByYearDay(records []domain.CompletionRecord, year, dayCount int) []*domain.CompletionRecord {
	byDay := make([]*domain.CompletionRecord, dayCount)
	for i := range records {
		date := domain.DayOf(records[i].Date)
		if date.Year() != year {
			continue
		}
		idx := date.YearDay() - 1
		if byDay[idx] == nil {
			byDay[idx] = &records[i]
		}
	}
	return byDay
}
