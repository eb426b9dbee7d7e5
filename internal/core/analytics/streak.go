package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// ComputeStreak counts the unbroken run of completed days ending at asOf.
//
// Completed days are walked newest first against an expected offset of 0, 1,
// 2, ... days before asOf; the first day off that offset ends the run. A
// series without a record for asOf itself therefore has a streak of 0, even
// if yesterday and the days before were all completed. A completed day after
// asOf sorts first and is off offset 0, so it also yields 0. The longest
// streak only counts days up to asOf.
func ComputeStreak(series domain.CompletionSeries, asOf time.Time) (domain.StreakResult, error) {
	if err := series.Validate(); err != nil {
		return domain.StreakResult{}, err
	}

	today := domain.DayOf(asOf)
	days := completedDays(series.Records)

	current := 0
	for i, d := range days {
		if domain.DaysBetween(d, today) != i {
			break
		}
		current++
	}

	return domain.StreakResult{
		SeriesID: series.ID,
		Length:   current,
		Longest:  longestRun(onOrBefore(days, today)),
		AsOf:     today,
	}, nil
}

// LongestStreak returns the longest run of consecutive completed days up to asOf.
func LongestStreak(series domain.CompletionSeries, asOf time.Time) (int, error) {
	if err := series.Validate(); err != nil {
		return 0, err
	}
	return longestRun(onOrBefore(completedDays(series.Records), domain.DayOf(asOf))), nil
}

// completedDays returns the distinct completed days, newest first.
// The first record of a day decides whether that day counts.
func completedDays(records []domain.CompletionRecord) []time.Time {
	seen := make(map[string]bool, len(records))
	days := make([]time.Time, 0, len(records))

	for _, r := range records {
		day := domain.DayOf(r.Date)
		key := day.Format(domain.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true

		if r.IsCompleted {
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	return days
}

// onOrBefore drops the leading days after asOf from a newest-first list.
func onOrBefore(days []time.Time, asOf time.Time) []time.Time {
	for i, d := range days {
		if !d.After(asOf) {
			return days[i:]
		}
	}
	return nil
}

// longestRun expects distinct days sorted newest first.
func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if domain.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
