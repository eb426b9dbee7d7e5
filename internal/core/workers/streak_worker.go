package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

const defaultQueueSize = 100

type StreakRefresher interface {
	RefreshStreak(ctx context.Context, seriesID string, asOf time.Time) (*domain.StreakResult, bool, error)
}

type StreakJob struct {
	SeriesID string
	AsOf     time.Time
}

type StreakWorker struct {
	refresher StreakRefresher
	jobs      chan StreakJob
	now       func() time.Time
}

func NewStreakWorker(refresher StreakRefresher) *StreakWorker {
	return &StreakWorker{
		refresher: refresher,
		jobs:      make(chan StreakJob, defaultQueueSize),
		now:       time.Now,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] streak worker shutting down")
				return
			}
		}
	}()
}

// EnqueueWait schedules a refresh as of the processing day, waiting for room
// in the queue until ctx is done.
func (w *StreakWorker) EnqueueWait(ctx context.Context, seriesID string) error {
	select {
	case w.jobs <- StreakJob{SeriesID: seriesID}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnqueueAt schedules a one-off refresh without blocking. It reports false
// and drops the job when the queue is full.
func (w *StreakWorker) EnqueueAt(seriesID string, asOf time.Time) bool {
	select {
	case w.jobs <- StreakJob{SeriesID: seriesID, AsOf: asOf}:
		return true
	default:
		log.Printf("[WORKER] queue full, dropping streak job for series %s", seriesID)
		return false
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	asOf := job.AsOf
	if asOf.IsZero() {
		asOf = w.now()
	}

	result, changed, err := w.refresher.RefreshStreak(ctx, job.SeriesID, asOf)
	if err != nil {
		log.Printf("[WORKER] failed to refresh streak for %s: %v", job.SeriesID, err)
		return
	}

	if changed {
		log.Printf("[WORKER] streak updated for %s: current=%d longest=%d", job.SeriesID, result.Length, result.Longest)
	}
}
