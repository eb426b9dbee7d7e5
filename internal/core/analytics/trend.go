package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// DefaultWindowDays is the default size of both trend windows.
const DefaultWindowDays = 7

const (
	improvingThreshold = 50.0
	moderateThreshold  = 20.0
)

// ComputeTrend compares the average count of the newest recentWindowDays
// records with the average of the priorWindowDays records right before them.
//
// Windows are counted in records, newest first, not in calendar days: days
// without a record are left out of the average rather than counted as zero.
// PercentChange only reports reduction: it is clamped at 0 when the count
// went up, and is 0 when the prior window is empty or averages 0.
func ComputeTrend(series domain.CountSeries, asOf time.Time, recentWindowDays, priorWindowDays int) (domain.TrendResult, error) {
	if recentWindowDays <= 0 {
		return domain.TrendResult{}, domain.NewInvalidInput("recent_window_days", "must be positive")
	}
	if priorWindowDays <= 0 {
		return domain.TrendResult{}, domain.NewInvalidInput("prior_window_days", "must be positive")
	}
	if err := series.Validate(); err != nil {
		return domain.TrendResult{}, err
	}

	records := countsNewestFirst(series.Records, domain.DayOf(asOf))

	recentEnd := min(recentWindowDays, len(records))
	priorEnd := min(recentEnd+priorWindowDays, len(records))

	recent := records[:recentEnd]
	prior := records[recentEnd:priorEnd]

	result := domain.TrendResult{
		SeriesID:            series.ID,
		RecentWindowAverage: meanValue(recent),
		PriorWindowAverage:  meanValue(prior),
		RecentRecords:       len(recent),
		PriorRecords:        len(prior),
	}

	if result.PriorWindowAverage > 0 {
		change := (result.PriorWindowAverage - result.RecentWindowAverage) / result.PriorWindowAverage * 100
		result.PercentChange = max(0, change)
	}
	result.Status = ClassifyTrend(result.PercentChange)

	return result, nil
}

// ClassifyTrend maps a reduction percentage to its status.
func ClassifyTrend(percentChange float64) domain.TrendStatus {
	switch {
	case percentChange >= improvingThreshold:
		return domain.TrendImproving
	case percentChange >= moderateThreshold:
		return domain.TrendModerate
	default:
		return domain.TrendNeedsAttention
	}
}

// countsNewestFirst keeps the first record of each day up to asOf, newest first.
func countsNewestFirst(records []domain.CountRecord, asOf time.Time) []domain.CountRecord {
	seen := make(map[string]bool, len(records))
	out := make([]domain.CountRecord, 0, len(records))

	for _, r := range records {
		day := domain.DayOf(r.Date)
		key := day.Format(domain.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true

		if day.After(asOf) {
			continue
		}
		r.Date = day
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out
}

func meanValue(records []domain.CountRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Value
	}
	return sum / float64(len(records))
}
