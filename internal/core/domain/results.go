package domain

import "time"

type Intensity string

const (
	IntensityNone    Intensity = "none"
	IntensityVeryLow Intensity = "veryLow"
	IntensityLow     Intensity = "low"
	IntensityMedium  Intensity = "medium"
	IntensityHigh    Intensity = "high"
	IntensityFull    Intensity = "full"
)

type TrendStatus string

const (
	TrendImproving      TrendStatus = "improving"
	TrendModerate       TrendStatus = "moderate"
	TrendNeedsAttention TrendStatus = "needs_attention"
)

type StreakResult struct {
	SeriesID string    `json:"series_id"`
	Length   int       `json:"length"`
	Longest  int       `json:"longest"`
	AsOf     time.Time `json:"as_of"`
}

type TrendResult struct {
	SeriesID            string      `json:"series_id"`
	RecentWindowAverage float64     `json:"recent_window_average"`
	PriorWindowAverage  float64     `json:"prior_window_average"`
	PercentChange       float64     `json:"percent_change"`
	Status              TrendStatus `json:"status"`
	RecentRecords       int         `json:"recent_records"`
	PriorRecords        int         `json:"prior_records"`
}

type ImpactProjection struct {
	SeriesID          string  `json:"series_id"`
	WindowDays        int     `json:"window_days"`
	PerUnitCost       float64 `json:"per_unit_cost"`
	WindowTotal       float64 `json:"window_total"`
	MonthlyProjection float64 `json:"monthly_projection"`
	YearlyProjection  float64 `json:"yearly_projection"`
}
