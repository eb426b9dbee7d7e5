package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// DefaultStreakCron runs five minutes after midnight, seconds field included.
const DefaultStreakCron = "0 5 0 * * *"

type ActiveSeriesLister interface {
	ListActive(ctx context.Context, kind domain.SeriesKind) ([]*domain.Series, error)
}

type StreakEnqueuer interface {
	EnqueueWait(ctx context.Context, seriesID string) error
}

// StreakScheduler re-enqueues every active completion series on a cron
// schedule. Streaks break when the day rolls over even if nothing was recorded,
// so snapshots go stale without it.
type StreakScheduler struct {
	cron   *cron.Cron
	lister ActiveSeriesLister
	queue  StreakEnqueuer
	ctx    context.Context
}

func NewStreakScheduler(ctx context.Context, lister ActiveSeriesLister, queue StreakEnqueuer) *StreakScheduler {
	return &StreakScheduler{
		cron:   cron.New(cron.WithSeconds()),
		lister: lister,
		queue:  queue,
		ctx:    ctx,
	}
}

func (s *StreakScheduler) Register(expr string) error {
	if expr == "" {
		expr = DefaultStreakCron
	}
	if _, err := s.cron.AddFunc(expr, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register streak refresh: %w", err)
	}
	return nil
}

func (s *StreakScheduler) Start() {
	s.cron.Start()
	log.Println("[CRON] scheduler started")
}

// Stop waits for a running refresh pass to finish.
func (s *StreakScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[CRON] scheduler stopped")
}

// RunNow enqueues every active completion series and returns how many were
// queued. It waits for the worker to make room, so a pass only comes up short
// when the scheduler context is cancelled.
func (s *StreakScheduler) RunNow() int {
	series, err := s.lister.ListActive(s.ctx, domain.SeriesKindCompletion)
	if err != nil {
		log.Printf("[ERROR] streak refresh: failed to list active series: %v", err)
		return 0
	}

	queued := 0
	for _, meta := range series {
		if err := s.queue.EnqueueWait(s.ctx, meta.ID); err != nil {
			log.Printf("[CRON] streak refresh interrupted: %v", err)
			break
		}
		queued++
	}

	log.Printf("[CRON] streak refresh queued %d/%d series", queued, len(series))
	return queued
}
