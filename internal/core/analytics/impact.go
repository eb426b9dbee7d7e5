package analytics

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

const (
	daysPerMonth  = 30
	monthsPerYear = 12
)

// ProjectImpact sums the counts of the trailing windowDays (asOf included)
// and scales the total to a 30-day month and a 12-month year, priced at
// perUnitCost. Cost lookup per category is up to the caller.
func ProjectImpact(series domain.CountSeries, asOf time.Time, windowDays int, perUnitCost float64) (domain.ImpactProjection, error) {
	if windowDays <= 0 {
		return domain.ImpactProjection{}, domain.NewInvalidInput("window_days", "must be positive")
	}
	if math.IsNaN(perUnitCost) || math.IsInf(perUnitCost, 0) || perUnitCost < 0 {
		return domain.ImpactProjection{}, domain.NewInvalidInput("per_unit_cost", "must be a non-negative number")
	}
	if err := series.Validate(); err != nil {
		return domain.ImpactProjection{}, err
	}

	today := domain.DayOf(asOf)

	var total float64
	for _, r := range countsNewestFirst(series.Records, today) {
		if domain.DaysBetween(r.Date, today) >= windowDays {
			break
		}
		total += r.Value
	}

	monthly := total * perUnitCost
	if windowDays != daysPerMonth {
		monthly = total * (float64(daysPerMonth) / float64(windowDays)) * perUnitCost
	}

	return domain.ImpactProjection{
		SeriesID:          series.ID,
		WindowDays:        windowDays,
		PerUnitCost:       perUnitCost,
		WindowTotal:       total,
		MonthlyProjection: monthly,
		YearlyProjection:  monthly * monthsPerYear,
	}, nil
}
