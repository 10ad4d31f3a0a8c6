package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/repository"
)

// CounterBuffer holds view/like increments until they are flushed to postgres.
type CounterBuffer interface {
	Add(ctx context.Context, postID int64, views, likes int64) error
	Drain(ctx context.Context) ([]repository.CounterDelta, error)
}

type InteractionService interface {
	View(ctx context.Context, postID int64) error
	Like(ctx context.Context, postID int64) error
}

type interactionService struct {
	postRepo  repository.PostRepository
	buffer    CounterBuffer
	logger    *slog.Logger
	// one warning per outage window instead of one per request
	warnEvery *rate.Sometimes
}

// NewInteractionService writes counters straight to postgres when buffer is nil.
func NewInteractionService(postRepo repository.PostRepository, buffer CounterBuffer, logger *slog.Logger) InteractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &interactionService{
		postRepo:  postRepo,
		buffer:    buffer,
		logger:    logger,
		warnEvery: &rate.Sometimes{First: 1, Interval: 30 * time.Second},
	}
}

func (s *interactionService) View(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, 1, 0)
}

func (s *interactionService) Like(ctx context.Context, postID int64) error {
	return s.bump(ctx, postID, 0, 1)
}

func (s *interactionService) bump(ctx context.Context, postID, views, likes int64) error {
	if s.buffer != nil {
		exists, err := s.postRepo.Exists(ctx, postID)
		if err != nil {
			return apperror.NewInternal("failed to load post", err)
		}
		if !exists {
			return apperror.NewNotFound(MsgPostNotFound, nil)
		}

		err = s.buffer.Add(ctx, postID, views, likes)
		if err == nil {
			return nil
		}
		// Redis is down: write through so the increment is not lost
		s.warnEvery.Do(func() {
			s.logger.Warn("counter_buffer_failed", "post_id", postID, "error", err)
		})
	}

	// a single UPDATE ... SET views = views + n, so concurrent bumps never lose writes
	if err := s.postRepo.IncrementCounters(ctx, postID, views, likes); err != nil {
		if repository.IsNotFound(err) {
			return apperror.NewNotFound(MsgPostNotFound, nil)
		}
		return apperror.NewInternal("failed to update counters", err)
	}
	return nil
}

// CounterFlusher periodically moves buffered counters into postgres.
type CounterFlusher struct {
	buffer   CounterBuffer
	postRepo repository.PostRepository
	interval time.Duration
	logger   *slog.Logger
	stopChan chan struct{}
	done     chan struct{}
	started  atomic.Bool
	closed   atomic.Bool
}

func NewCounterFlusher(buffer CounterBuffer, postRepo repository.PostRepository, interval time.Duration, logger *slog.Logger) *CounterFlusher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CounterFlusher{
		buffer:   buffer,
		postRepo: postRepo,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the flush loop in its own goroutine. It is a no-op after the first call.
func (f *CounterFlusher) Start() {
	if !f.started.CompareAndSwap(false, true) {
		return
	}
	go f.run()
}

func (f *CounterFlusher) run() {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.logger.Info("counter_flusher_started", "interval", f.interval.String())

	for {
		select {
		case <-f.stopChan:
			// final flush so buffered counters survive a restart
			f.flushWithTimeout()
			f.logger.Info("counter_flusher_stopped")
			return
		case <-ticker.C:
			f.flushWithTimeout()
		}
	}
}

func (f *CounterFlusher) flushWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	n, err := f.Flush(ctx)
	if err != nil {
		f.logger.Error("counter_flush_failed", "applied", n, "error", err)
		return
	}
	if n > 0 {
		f.logger.Info("counter_flush_success", "posts", n, "duration_ms", time.Since(start).Milliseconds())
	}
}

// Flush drains the buffer once and applies every delta. Deltas that fail to
// apply are put back for the next round; deltas for deleted posts are dropped.
func (f *CounterFlusher) Flush(ctx context.Context) (int, error) {
	deltas, err := f.buffer.Drain(ctx)
	applied := 0
	for _, d := range deltas {
		perr := f.postRepo.IncrementCounters(ctx, d.PostID, d.Views, d.Likes)
		switch {
		case perr == nil:
			applied++
		case repository.IsNotFound(perr):
			f.logger.Debug("counter_flush_post_gone", "post_id", d.PostID)
		default:
			if rerr := f.buffer.Add(ctx, d.PostID, d.Views, d.Likes); rerr != nil {
				f.logger.Error("counter_requeue_failed", "post_id", d.PostID, "views", d.Views, "likes", d.Likes, "error", rerr)
			}
			if err == nil {
				err = fmt.Errorf("apply counters for post %d: %w", d.PostID, perr)
			}
		}
	}
	return applied, err
}

// Stop ends the loop after a final flush. Safe to call more than once.
func (f *CounterFlusher) Stop() {
	if f.closed.Swap(true) {
		return
	}
	close(f.stopChan)
	if f.started.Load() {
		<-f.done
	}
}
