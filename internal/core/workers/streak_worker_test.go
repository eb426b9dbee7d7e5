package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshStreak(ctx context.Context, seriesID string, asOf time.Time) (*domain.StreakResult, bool, error) {
	args := m.Called(ctx, seriesID, asOf)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.StreakResult), args.Bool(1), args.Error(2)
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) ListActive(ctx context.Context, kind domain.SeriesKind) ([]*domain.Series, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Series), args.Error(1)
}

type recordingQueue struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (q *recordingQueue) EnqueueWait(ctx context.Context, seriesID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.ids = append(q.ids, seriesID)
	return nil
}

type countingRefresher struct {
	mu   sync.Mutex
	seen map[string]int
}

func (r *countingRefresher) RefreshStreak(ctx context.Context, seriesID string, asOf time.Time) (*domain.StreakResult, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[seriesID]++
	return &domain.StreakResult{SeriesID: seriesID}, false, nil
}

func (r *countingRefresher) distinct() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func activeSeries(n int) []*domain.Series {
	out := make([]*domain.Series, n)
	for i := range out {
		out[i] = &domain.Series{ID: fmt.Sprintf("s%d", i), Kind: domain.SeriesKindCompletion, IsActive: true}
	}
	return out
}

func TestStreakWorker_ProcessJob(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Success: Should default the reference day to now", func(t *testing.T) {
		refresher := new(MockRefresher)
		w := NewStreakWorker(refresher)
		w.now = func() time.Time { return fixed }

		refresher.On("RefreshStreak", ctx, "read", fixed).
			Return(&domain.StreakResult{SeriesID: "read", Length: 4, Longest: 9}, true, nil)

		w.processJob(ctx, StreakJob{SeriesID: "read"})

		refresher.AssertExpectations(t)
	})

	t.Run("Success: Should keep an explicit reference day", func(t *testing.T) {
		refresher := new(MockRefresher)
		w := NewStreakWorker(refresher)
		asOf := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

		refresher.On("RefreshStreak", ctx, "read", asOf).
			Return(&domain.StreakResult{SeriesID: "read"}, false, nil)

		w.processJob(ctx, StreakJob{SeriesID: "read", AsOf: asOf})

		refresher.AssertExpectations(t)
	})

	t.Run("Fail: Should survive refresh errors", func(t *testing.T) {
		refresher := new(MockRefresher)
		w := NewStreakWorker(refresher)
		w.now = func() time.Time { return fixed }

		refresher.On("RefreshStreak", ctx, "ghost", fixed).Return(nil, false, domain.ErrSeriesNotFound)

		assert.NotPanics(t, func() {
			w.processJob(ctx, StreakJob{SeriesID: "ghost"})
		})
	})
}

func TestStreakWorker_Enqueue(t *testing.T) {
	t.Run("Success: Should drop jobs once the queue is full", func(t *testing.T) {
		w := NewStreakWorker(new(MockRefresher))

		for i := 0; i < defaultQueueSize; i++ {
			require.True(t, w.EnqueueAt("read", time.Time{}))
		}

		assert.False(t, w.EnqueueAt("overflow", time.Time{}))
		assert.Len(t, w.jobs, defaultQueueSize)
	})

	t.Run("Success: Should drain jobs after Start", func(t *testing.T) {
		refresher := new(MockRefresher)
		w := NewStreakWorker(refresher)
		done := make(chan struct{})

		refresher.On("RefreshStreak", mock.Anything, "read", mock.Anything).
			Return(&domain.StreakResult{SeriesID: "read", Length: 1, Longest: 1}, true, nil).
			Run(func(mock.Arguments) { close(done) })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w.Start(ctx)
		require.NoError(t, w.EnqueueWait(ctx, "read"))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not process the job")
		}
	})
}

func TestStreakScheduler(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Should enqueue every active completion series", func(t *testing.T) {
		lister := new(MockLister)
		queue := &recordingQueue{}
		s := NewStreakScheduler(ctx, lister, queue)

		lister.On("ListActive", ctx, domain.SeriesKindCompletion).Return([]*domain.Series{
			{ID: "read"}, {ID: "run"},
		}, nil)

		assert.Equal(t, 2, s.RunNow())
		assert.Equal(t, []string{"read", "run"}, queue.ids)
	})

	t.Run("Success: Should stop the pass when the queue gives up", func(t *testing.T) {
		lister := new(MockLister)
		queue := &recordingQueue{err: context.Canceled}
		s := NewStreakScheduler(ctx, lister, queue)

		lister.On("ListActive", ctx, domain.SeriesKindCompletion).Return([]*domain.Series{
			{ID: "read"}, {ID: "run"},
		}, nil)

		assert.Equal(t, 0, s.RunNow())
		assert.Empty(t, queue.ids)
	})

	t.Run("Success: Should refresh more series than the queue holds", func(t *testing.T) {
		total := defaultQueueSize*3 + 7
		lister := new(MockLister)
		refresher := &countingRefresher{seen: make(map[string]int)}
		worker := NewStreakWorker(refresher)

		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		lister.On("ListActive", runCtx, domain.SeriesKindCompletion).Return(activeSeries(total), nil)

		worker.Start(runCtx)
		s := NewStreakScheduler(runCtx, lister, worker)

		assert.Equal(t, total, s.RunNow())
		assert.Eventually(t, func() bool {
			return refresher.distinct() == total
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("Fail: Should give up waiting once the context ends", func(t *testing.T) {
		lister := new(MockLister)
		worker := NewStreakWorker(new(MockRefresher))

		runCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		lister.On("ListActive", runCtx, domain.SeriesKindCompletion).Return(activeSeries(defaultQueueSize+50), nil)

		s := NewStreakScheduler(runCtx, lister, worker)

		assert.Equal(t, defaultQueueSize, s.RunNow())
	})

	t.Run("Fail: Should enqueue nothing when listing fails", func(t *testing.T) {
		lister := new(MockLister)
		queue := &recordingQueue{}
		s := NewStreakScheduler(ctx, lister, queue)

		lister.On("ListActive", ctx, domain.SeriesKindCompletion).Return(nil, errors.New("db down"))

		assert.Equal(t, 0, s.RunNow())
		assert.Empty(t, queue.ids)
	})

	t.Run("Success: Should accept the default schedule", func(t *testing.T) {
		s := NewStreakScheduler(ctx, new(MockLister), &recordingQueue{})
		assert.NoError(t, s.Register(""))
	})

	t.Run("Fail: Should reject a malformed schedule", func(t *testing.T) {
		s := NewStreakScheduler(ctx, new(MockLister), &recordingQueue{})
		assert.Error(t, s.Register("every night please"))
	})
}
