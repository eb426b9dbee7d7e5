package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// AnalyticsService loads record snapshots from the store and hands them to the engine.
type AnalyticsService struct {
	repo    domain.SeriesRepository
	workers int
}

func NewAnalyticsService(repo domain.SeriesRepository, workers int) *AnalyticsService {
	return &AnalyticsService{
		repo:    repo,
		workers: workers,
	}
}

type HeatmapInput struct {
	UserID          string
	Year            int
	SeriesIDs       []string
	IncludeInactive bool
}

// HeatmapsInput asks for several years over the same selection.
type HeatmapsInput struct {
	UserID          string
	Years           []int
	SeriesIDs       []string
	IncludeInactive bool
}

type StreaksInput struct {
	UserID string
	AsOf   time.Time
}

type TrendsInput struct {
	UserID           string
	AsOf             time.Time
	RecentWindowDays int
	PriorWindowDays  int
}

type ImpactInput struct {
	UserID      string
	SeriesID    string
	AsOf        time.Time
	WindowDays  int
	PerUnitCost float64
}

func (s *AnalyticsService) GetHeatmap(ctx context.Context, input HeatmapInput) (*domain.Heatmap, error) {
	if input.Year < 1 || input.Year > 9999 {
		return nil, domain.NewInvalidInput("year", "must be between 1 and 9999")
	}

	selected, err := s.selectSeries(ctx, input.UserID, domain.SeriesKindCompletion, input.SeriesIDs, input.IncludeInactive)
	if err != nil {
		return nil, err
	}

	from := time.Date(input.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(input.Year, time.December, 31, 0, 0, 0, 0, time.UTC)

	series, err := s.loadCompletionSeries(ctx, selected, from, to)
	if err != nil {
		return nil, err
	}

	heatmap, err := analytics.BuildHeatmap(series, input.Year)
	if err != nil {
		return nil, err
	}

	return &heatmap, nil
}

// GetHeatmaps loads the records spanning every requested year once and builds
// the heatmaps in parallel, in the order the years were given.
func (s *AnalyticsService) GetHeatmaps(ctx context.Context, input HeatmapsInput) ([]domain.Heatmap, error) {
	if len(input.Years) == 0 {
		return nil, domain.NewInvalidInput("years", "at least one year is required")
	}

	first, last := input.Years[0], input.Years[0]
	for _, y := range input.Years {
		if y < 1 || y > 9999 {
			return nil, domain.NewInvalidInput("year", "must be between 1 and 9999")
		}
		first = min(first, y)
		last = max(last, y)
	}

	selected, err := s.selectSeries(ctx, input.UserID, domain.SeriesKindCompletion, input.SeriesIDs, input.IncludeInactive)
	if err != nil {
		return nil, err
	}

	from := time.Date(first, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(last, time.December, 31, 0, 0, 0, 0, time.UTC)

	series, err := s.loadCompletionSeries(ctx, selected, from, to)
	if err != nil {
		return nil, err
	}

	return analytics.AggregateYears(ctx, series, input.Years, s.workers)
}

func (s *AnalyticsService) GetStreaks(ctx context.Context, input StreaksInput) ([]domain.StreakResult, error) {
	if input.AsOf.IsZero() {
		return nil, domain.NewInvalidInput("as_of", "is required")
	}

	selected, err := s.selectSeries(ctx, input.UserID, domain.SeriesKindCompletion, nil, false)
	if err != nil {
		return nil, err
	}

	series, err := s.loadCompletionSeries(ctx, selected, time.Time{}, domain.DayOf(input.AsOf))
	if err != nil {
		return nil, err
	}

	return analytics.StreaksParallel(ctx, series, input.AsOf, s.workers)
}

func (s *AnalyticsService) GetTrends(ctx context.Context, input TrendsInput) ([]domain.TrendResult, error) {
	if input.AsOf.IsZero() {
		return nil, domain.NewInvalidInput("as_of", "is required")
	}

	selected, err := s.selectSeries(ctx, input.UserID, domain.SeriesKindCount, nil, false)
	if err != nil {
		return nil, err
	}

	series, err := s.loadCountSeries(ctx, selected, time.Time{}, domain.DayOf(input.AsOf))
	if err != nil {
		return nil, err
	}

	return analytics.TrendsParallel(ctx, series, input.AsOf, input.RecentWindowDays, input.PriorWindowDays, s.workers)
}

func (s *AnalyticsService) GetImpact(ctx context.Context, input ImpactInput) (*domain.ImpactProjection, error) {
	if input.AsOf.IsZero() {
		return nil, domain.NewInvalidInput("as_of", "is required")
	}
	if input.WindowDays <= 0 {
		return nil, domain.NewInvalidInput("window_days", "must be positive")
	}

	meta, err := s.repo.GetByID(ctx, input.SeriesID)
	if err != nil {
		return nil, err
	}
	if meta.UserID != input.UserID {
		return nil, domain.ErrSeriesNotFound
	}
	if meta.Kind != domain.SeriesKindCount {
		return nil, domain.NewInvalidInput("series.kind", "impact needs a count series")
	}

	to := domain.DayOf(input.AsOf)
	from := to.AddDate(0, 0, -(input.WindowDays - 1))

	series, err := s.loadCountSeries(ctx, []*domain.Series{meta}, from, to)
	if err != nil {
		return nil, err
	}

	projection, err := analytics.ProjectImpact(series[0], input.AsOf, input.WindowDays, input.PerUnitCost)
	if err != nil {
		return nil, err
	}

	return &projection, nil
}

// RefreshStreak recomputes the streak of one series and stores the snapshot.
func (s *AnalyticsService) RefreshStreak(ctx context.Context, seriesID string, asOf time.Time) (*domain.StreakResult, bool, error) {
	meta, err := s.repo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, false, err
	}
	if meta.Kind != domain.SeriesKindCompletion {
		return nil, false, domain.NewInvalidInput("series.kind", "streaks need a completion series")
	}

	series, err := s.loadCompletionSeries(ctx, []*domain.Series{meta}, time.Time{}, domain.DayOf(asOf))
	if err != nil {
		return nil, false, err
	}

	result, err := analytics.ComputeStreak(series[0], asOf)
	if err != nil {
		return nil, false, err
	}

	if meta.CurrentStreak == result.Length && meta.LongestStreak == result.Longest {
		return &result, false, nil
	}

	if err := s.repo.UpdateStreaks(ctx, meta.ID, result.Length, result.Longest); err != nil {
		return nil, false, fmt.Errorf("analytics service: failed to store streak for %s: %w", meta.ID, err)
	}

	return &result, true, nil
}

// selectSeries keeps the store's display order. Explicitly requested IDs must
// all exist, belong to the user and have the right kind; inactive series are
// only dropped from implicit selections.
func (s *AnalyticsService) selectSeries(ctx context.Context, userID string, kind domain.SeriesKind, ids []string, includeInactive bool) ([]*domain.Series, error) {
	if len(ids) > 0 {
		return s.selectByIDs(ctx, userID, kind, ids)
	}

	all, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics service: failed to list series: %w", err)
	}

	selected := make([]*domain.Series, 0, len(all))
	for _, meta := range all {
		if meta.Kind != kind {
			continue
		}
		if !meta.IsActive && !includeInactive {
			continue
		}
		selected = append(selected, meta)
	}

	return selected, nil
}

func (s *AnalyticsService) selectByIDs(ctx context.Context, userID string, kind domain.SeriesKind, ids []string) ([]*domain.Series, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := s.repo.ListByIDs(ctx, userID, unique)
	if err != nil {
		return nil, fmt.Errorf("analytics service: failed to list series: %w", err)
	}
	if len(found) < len(unique) {
		return nil, domain.ErrSeriesNotFound
	}

	for _, meta := range found {
		if meta.Kind != kind {
			return nil, &domain.InvalidInputError{SeriesID: meta.ID, Field: "series.kind", Reason: "must be " + string(kind)}
		}
	}

	return found, nil
}

func (s *AnalyticsService) loadCompletionSeries(ctx context.Context, metas []*domain.Series, from, to time.Time) ([]domain.CompletionSeries, error) {
	out := make([]domain.CompletionSeries, 0, len(metas))
	for _, meta := range metas {
		records, err := s.repo.ListCompletionRecords(ctx, meta.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("analytics service: failed to load records of %s: %w", meta.ID, err)
		}
		out = append(out, domain.CompletionSeries{Series: *meta, Records: records})
	}
	return out, nil
}

func (s *AnalyticsService) loadCountSeries(ctx context.Context, metas []*domain.Series, from, to time.Time) ([]domain.CountSeries, error) {
	out := make([]domain.CountSeries, 0, len(metas))
	for _, meta := range metas {
		records, err := s.repo.ListCountRecords(ctx, meta.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("analytics service: failed to load records of %s: %w", meta.ID, err)
		}
		out = append(out, domain.CountSeries{Series: *meta, Records: records})
	}
	return out, nil
}
