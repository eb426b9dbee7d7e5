package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var trendAsOf = time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

func countSeries(id string, records ...domain.CountRecord) domain.CountSeries {
	return domain.CountSeries{
		Series: domain.Series{
			ID:       id,
			Kind:     domain.SeriesKindCount,
			Name:     "Smoking",
			Category: "smoking",
			IsActive: true,
		},
		Records: records,
	}
}

// dailyCounts returns one record per day going back from trendAsOf, newest first.
func dailyCounts(values ...float64) []domain.CountRecord {
	out := make([]domain.CountRecord, len(values))
	for i, v := range values {
		out[i] = domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -i), Value: v}
	}
	return out
}

func TestComputeTrend(t *testing.T) {
	t.Run("Success: Reduction from 5/day to 2/day is improving", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(2, 2, 2, 2, 2, 2, 2, 5, 5, 5, 5, 5, 5, 5)...)

		got, err := ComputeTrend(s, trendAsOf, DefaultWindowDays, DefaultWindowDays)
		require.NoError(t, err)

		assert.Equal(t, "c1", got.SeriesID)
		assert.InDelta(t, 2.0, got.RecentWindowAverage, 1e-9)
		assert.InDelta(t, 5.0, got.PriorWindowAverage, 1e-9)
		assert.InDelta(t, 60.0, got.PercentChange, 1e-9)
		assert.Equal(t, domain.TrendImproving, got.Status)
		assert.Equal(t, 7, got.RecentRecords)
		assert.Equal(t, 7, got.PriorRecords)
	})

	t.Run("Success: Moderate reduction", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(7, 7, 10, 10)...)

		got, err := ComputeTrend(s, trendAsOf, 2, 2)
		require.NoError(t, err)

		assert.InDelta(t, 30.0, got.PercentChange, 1e-9)
		assert.Equal(t, domain.TrendModerate, got.Status)
	})

	t.Run("Edge Case: Prior average zero", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(3, 3, 0, 0)...)

		got, err := ComputeTrend(s, trendAsOf, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, 0.0, got.PriorWindowAverage)
		assert.Equal(t, 0.0, got.PercentChange)
		assert.Equal(t, domain.TrendNeedsAttention, got.Status)
	})

	t.Run("Edge Case: Prior window empty", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(1, 1, 1)...)

		got, err := ComputeTrend(s, trendAsOf, DefaultWindowDays, DefaultWindowDays)
		require.NoError(t, err)

		assert.Equal(t, 3, got.RecentRecords)
		assert.Equal(t, 0, got.PriorRecords)
		assert.Equal(t, 0.0, got.PercentChange)
		assert.Equal(t, domain.TrendNeedsAttention, got.Status)
	})

	t.Run("Edge Case: No records at all", func(t *testing.T) {
		got, err := ComputeTrend(countSeries("c1"), trendAsOf, DefaultWindowDays, DefaultWindowDays)
		require.NoError(t, err)

		assert.Equal(t, domain.TrendResult{SeriesID: "c1", Status: domain.TrendNeedsAttention}, got)
	})

	t.Run("Edge Case: Getting worse clamps to zero", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(6, 6, 3, 3)...)

		got, err := ComputeTrend(s, trendAsOf, 2, 2)
		require.NoError(t, err)

		assert.InDelta(t, 6.0, got.RecentWindowAverage, 1e-9)
		assert.InDelta(t, 3.0, got.PriorWindowAverage, 1e-9)
		assert.Equal(t, 0.0, got.PercentChange, "Regression is never reported as negative progress")
		assert.Equal(t, domain.TrendNeedsAttention, got.Status)
	})

	t.Run("Success: Missing days are skipped, not zero", func(t *testing.T) {
		s := countSeries("c1",
			domain.CountRecord{Date: trendAsOf, Value: 4},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -3), Value: 4},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -9), Value: 8},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -20), Value: 8},
		)

		got, err := ComputeTrend(s, trendAsOf, 2, 2)
		require.NoError(t, err)

		assert.InDelta(t, 4.0, got.RecentWindowAverage, 1e-9)
		assert.InDelta(t, 8.0, got.PriorWindowAverage, 1e-9)
		assert.InDelta(t, 50.0, got.PercentChange, 1e-9)
		assert.Equal(t, domain.TrendImproving, got.Status)
	})

	t.Run("Success: Unordered input and records after asOf", func(t *testing.T) {
		s := countSeries("c1",
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -3), Value: 10},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, 1), Value: 100},
			domain.CountRecord{Date: trendAsOf, Value: 1},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -2), Value: 10},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -1), Value: 1},
		)

		got, err := ComputeTrend(s, trendAsOf, 2, 2)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, got.RecentWindowAverage, 1e-9)
		assert.InDelta(t, 10.0, got.PriorWindowAverage, 1e-9)
		assert.InDelta(t, 90.0, got.PercentChange, 1e-9)
	})

	t.Run("Success: Duplicate day keeps the first record", func(t *testing.T) {
		s := countSeries("c1",
			domain.CountRecord{Date: trendAsOf, Value: 2},
			domain.CountRecord{Date: trendAsOf.Add(-2 * time.Hour), Value: 50},
			domain.CountRecord{Date: trendAsOf.AddDate(0, 0, -1), Value: 4},
		)

		got, err := ComputeTrend(s, trendAsOf, 1, 1)
		require.NoError(t, err)

		assert.InDelta(t, 2.0, got.RecentWindowAverage, 1e-9)
		assert.InDelta(t, 4.0, got.PriorWindowAverage, 1e-9)
	})

	t.Run("Fail: Non positive windows", func(t *testing.T) {
		s := countSeries("c1", dailyCounts(1)...)

		_, err := ComputeTrend(s, trendAsOf, 0, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = ComputeTrend(s, trendAsOf, 7, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Fail: Negative count", func(t *testing.T) {
		s := countSeries("c1", domain.CountRecord{Date: trendAsOf, Value: -3})

		_, err := ComputeTrend(s, trendAsOf, 7, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, domain.TrendImproving, ClassifyTrend(100))
	assert.Equal(t, domain.TrendImproving, ClassifyTrend(50))
	assert.Equal(t, domain.TrendModerate, ClassifyTrend(49.9))
	assert.Equal(t, domain.TrendModerate, ClassifyTrend(20))
	assert.Equal(t, domain.TrendNeedsAttention, ClassifyTrend(19.99))
	assert.Equal(t, domain.TrendNeedsAttention, ClassifyTrend(0))
}
