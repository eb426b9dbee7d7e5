package analytics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// MaxSeries caps how many series a single call accepts.
const MaxSeries = 10000

func guardSeriesCount(n int) error {
	if n > MaxSeries {
		return domain.NewInvalidInput("series", fmt.Sprintf("too many series (%d), max %d", n, MaxSeries))
	}
	return nil
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Streaks computes the streak of each series, in input order.
func Streaks(series []domain.CompletionSeries, asOf time.Time) ([]domain.StreakResult, error) {
	if err := guardSeriesCount(len(series)); err != nil {
		return nil, err
	}
	results := make([]domain.StreakResult, len(series))
	for i := range series {
		res, err := ComputeStreak(series[i], asOf)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// StreaksParallel is Streaks spread over at most workers goroutines.
// workers <= 0 means GOMAXPROCS.
func StreaksParallel(ctx context.Context, series []domain.CompletionSeries, asOf time.Time, workers int) ([]domain.StreakResult, error) {
	if err := guardSeriesCount(len(series)); err != nil {
		return nil, err
	}
	return parallelMap(ctx, series, workers, func(s domain.CompletionSeries) (domain.StreakResult, error) {
		return ComputeStreak(s, asOf)
	})
}

// Trends computes the trend of each series, in input order.
func Trends(series []domain.CountSeries, asOf time.Time, recentWindowDays, priorWindowDays int) ([]domain.TrendResult, error) {
	if err := guardSeriesCount(len(series)); err != nil {
		return nil, err
	}
	results := make([]domain.TrendResult, len(series))
	for i := range series {
		res, err := ComputeTrend(series[i], asOf, recentWindowDays, priorWindowDays)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// TrendsParallel is Trends spread over at most workers goroutines.
func TrendsParallel(ctx context.Context, series []domain.CountSeries, asOf time.Time, recentWindowDays, priorWindowDays, workers int) ([]domain.TrendResult, error) {
	if err := guardSeriesCount(len(series)); err != nil {
		return nil, err
	}
	return parallelMap(ctx, series, workers, func(s domain.CountSeries) (domain.TrendResult, error) {
		return ComputeTrend(s, asOf, recentWindowDays, priorWindowDays)
	})
}

// AggregateYears builds one heatmap per requested year, in the order given.
func AggregateYears(ctx context.Context, series []domain.CompletionSeries, years []int, workers int) ([]domain.Heatmap, error) {
	return parallelMap(ctx, years, workers, func(year int) (domain.Heatmap, error) {
		return BuildHeatmap(series, year)
	})
}

// parallelMap applies fn to every item and keeps results aligned with items.
// The inputs are only read, so no locking is needed.
func parallelMap[T, R any](ctx context.Context, items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(items[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
