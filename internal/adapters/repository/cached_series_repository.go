package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.SeriesRepository = (*CachedSeriesRepository)(nil)

const defaultCacheTTL = 30 * time.Minute

// CacheObserver receives "hit", "miss" or "error" for every cache lookup.
type CacheObserver interface {
	CacheLookup(result string)
}

// CachedSeriesRepository caches series headers per user. Records are never
// cached: they belong to the record store and change without notice.
type CachedSeriesRepository struct {
	next     domain.SeriesRepository
	cache    *redis.Client
	ttl      time.Duration
	observer CacheObserver
}

func NewCachedSeriesRepository(next domain.SeriesRepository, cache *redis.Client, ttl time.Duration, observer CacheObserver) *CachedSeriesRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedSeriesRepository{
		next:     next,
		cache:    cache,
		ttl:      ttl,
		observer: observer,
	}
}

func (r *CachedSeriesRepository) cacheKey(userID string) string {
	return fmt.Sprintf("series:user:%s", userID)
}

func (r *CachedSeriesRepository) observe(result string) {
	if r.observer != nil {
		r.observer.CacheLookup(result)
	}
}

func (r *CachedSeriesRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedSeriesRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Series, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var series []*domain.Series
		if err := json.Unmarshal([]byte(val), &series); err == nil {
			r.observe("hit")
			return series, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
		r.observe("error")
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
		r.observe("error")
	} else {
		r.observe("miss")
	}

	series, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(series); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return series, nil
}

func (r *CachedSeriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedSeriesRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Series, error) {
	return r.next.ListByIDs(ctx, userID, ids)
}

func (r *CachedSeriesRepository) ListActive(ctx context.Context, kind domain.SeriesKind) ([]*domain.Series, error) {
	return r.next.ListActive(ctx, kind)
}

func (r *CachedSeriesRepository) ListCompletionRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CompletionRecord, error) {
	return r.next.ListCompletionRecords(ctx, seriesID, from, to)
}

func (r *CachedSeriesRepository) ListCountRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CountRecord, error) {
	return r.next.ListCountRecords(ctx, seriesID, from, to)
}

func (r *CachedSeriesRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	series, err := r.next.GetByID(ctx, id)
	if err == nil && series != nil {
		defer r.invalidate(ctx, series.UserID)
	}

	return r.next.UpdateStreaks(ctx, id, current, longest)
}
