package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.SeriesRepository = (*InMemorySeriesRepository)(nil)

// InMemorySeriesRepository backs the CLI and tests. Series keep the order they
// were added in; records keep insertion order.
type InMemorySeriesRepository struct {
	series      map[string]*domain.Series
	order       []string
	completions map[string][]domain.CompletionRecord
	counts      map[string][]domain.CountRecord

	mu sync.RWMutex
}

func NewInMemorySeriesRepository() *InMemorySeriesRepository {
	return &InMemorySeriesRepository{
		series:      make(map[string]*domain.Series),
		completions: make(map[string][]domain.CompletionRecord),
		counts:      make(map[string][]domain.CountRecord),
	}
}

// AddSeries stores a copy of the series header, assigning an ID when empty.
func (r *InMemorySeriesRepository) AddSeries(s domain.Series) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Kind == "" {
		s.Kind = domain.SeriesKindCompletion
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.series[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.series[s.ID] = &s
	return s.ID, nil
}

func (r *InMemorySeriesRepository) AddCompletionRecords(seriesID string, records ...domain.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.series[seriesID]
	if !ok {
		return domain.ErrSeriesNotFound
	}
	if s.Kind != domain.SeriesKindCompletion {
		return domain.NewInvalidInput("series.kind", "expected completion series "+seriesID)
	}

	r.completions[seriesID] = append(r.completions[seriesID], records...)
	return nil
}

func (r *InMemorySeriesRepository) AddCountRecords(seriesID string, records ...domain.CountRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.series[seriesID]
	if !ok {
		return domain.ErrSeriesNotFound
	}
	if s.Kind != domain.SeriesKindCount {
		return domain.NewInvalidInput("series.kind", "expected count series "+seriesID)
	}

	r.counts[seriesID] = append(r.counts[seriesID], records...)
	return nil
}

func (r *InMemorySeriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.series[id]
	if !ok {
		return nil, domain.ErrSeriesNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *InMemorySeriesRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Series, error) {
	return r.filter(func(s *domain.Series) bool {
		return s.UserID == userID
	}), nil
}

func (r *InMemorySeriesRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Series, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(s *domain.Series) bool {
		return s.UserID == userID && wanted[s.ID]
	}), nil
}

func (r *InMemorySeriesRepository) ListActive(ctx context.Context, kind domain.SeriesKind) ([]*domain.Series, error) {
	return r.filter(func(s *domain.Series) bool {
		return s.IsActive && s.Kind == kind
	}), nil
}

func (r *InMemorySeriesRepository) ListCompletionRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.series[seriesID]; !ok {
		return nil, domain.ErrSeriesNotFound
	}

	out := []domain.CompletionRecord{}
	for _, rec := range r.completions[seriesID] {
		if inRange(rec.Date, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *InMemorySeriesRepository) ListCountRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.series[seriesID]; !ok {
		return nil, domain.ErrSeriesNotFound
	}

	out := []domain.CountRecord{}
	for _, rec := range r.counts[seriesID] {
		if inRange(rec.Date, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *InMemorySeriesRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.series[id]
	if !ok {
		return domain.ErrSeriesNotFound
	}
	s.UpdateStreak(current, longest)
	return nil
}

func (r *InMemorySeriesRepository) filter(keep func(*domain.Series) bool) []*domain.Series {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Series{}
	for _, id := range r.order {
		s := r.series[id]
		if keep(s) {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out
}

// inRange compares calendar days; a zero from means no lower bound.
func inRange(date, from, to time.Time) bool {
	day := domain.DayOf(date)
	if !from.IsZero() && day.Before(domain.DayOf(from)) {
		return false
	}
	return !day.After(domain.DayOf(to))
}
