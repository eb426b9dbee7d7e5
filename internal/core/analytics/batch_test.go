package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

func manySeries(n int, asOf time.Time) []domain.CompletionSeries {
	out := make([]domain.CompletionSeries, n)
	for i := range out {
		var recs []domain.CompletionRecord
		for d := 0; d < i%20; d++ {
			recs = append(recs, domain.CompletionRecord{Date: asOf.AddDate(0, 0, -d), IsCompleted: true})
		}
		out[i] = completionSeries(fmt.Sprintf("h%d", i), fmt.Sprintf("Habit %d", i), "", recs...)
	}
	return out
}

func TestStreaksParallel_MatchesSequential(t *testing.T) {
	asOf := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	input := manySeries(300, asOf)

	seq, err := Streaks(input, asOf)
	require.NoError(t, err)

	par, err := StreaksParallel(context.Background(), input, asOf, 8)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	assert.Equal(t, 19, par[19].Length)
	assert.Equal(t, 0, par[20].Length)
}

func TestTrendsParallel_MatchesSequential(t *testing.T) {
	input := []domain.CountSeries{
		countSeries("c1", dailyCounts(2, 2, 5, 5)...),
		countSeries("c2", dailyCounts(5, 5, 2, 2)...),
		countSeries("c3"),
	}

	seq, err := Trends(input, trendAsOf, 2, 2)
	require.NoError(t, err)

	par, err := TrendsParallel(context.Background(), input, trendAsOf, 2, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	assert.Equal(t, domain.TrendImproving, par[0].Status)
	assert.Equal(t, domain.TrendNeedsAttention, par[1].Status)
}

func TestAggregateYears(t *testing.T) {
	s := completionSeries("h1", "Run", "", domain.CompletionRecord{Date: day(2024, 2, 29), IsCompleted: true})

	maps, err := AggregateYears(context.Background(), []domain.CompletionSeries{s}, []int{2025, 2024, 2023}, 2)
	require.NoError(t, err)

	require.Len(t, maps, 3)
	assert.Equal(t, 2025, maps[0].Year)
	assert.Len(t, maps[0].Days, 365)
	assert.Equal(t, 2024, maps[1].Year)
	assert.Len(t, maps[1].Days, 366)
	assert.Equal(t, 1, maps[1].Days[59].CompletedCount)
	assert.Equal(t, 2023, maps[2].Year)
}

func TestParallel_Errors(t *testing.T) {
	asOf := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Fail: Invalid series propagates", func(t *testing.T) {
		input := manySeries(50, asOf)
		input[17].Records = append(input[17].Records, domain.CompletionRecord{})

		res, err := StreaksParallel(context.Background(), input, asOf, 4)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, res)
	})

	t.Run("Fail: Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := StreaksParallel(ctx, manySeries(10, asOf), asOf, 2)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
	})

	t.Run("Fail: Input size guard", func(t *testing.T) {
		_, err := StreaksParallel(context.Background(), make([]domain.CompletionSeries, MaxSeries+1), asOf, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = Trends(make([]domain.CountSeries, MaxSeries+1), asOf, 7, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
