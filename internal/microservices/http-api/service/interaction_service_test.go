package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/repository"
)

// memoryBuffer is an in-process CounterBuffer.
type memoryBuffer struct {
	mu      sync.Mutex
	pending map[int64]repository.CounterDelta
	addErr  error
}

func newMemoryBuffer() *memoryBuffer {
	return &memoryBuffer{pending: make(map[int64]repository.CounterDelta)}
}

func (b *memoryBuffer) Add(_ context.Context, postID int64, views, likes int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.addErr != nil {
		return b.addErr
	}
	d := b.pending[postID]
	d.PostID = postID
	d.Views += views
	d.Likes += likes
	b.pending[postID] = d
	return nil
}

func (b *memoryBuffer) Drain(context.Context) ([]repository.CounterDelta, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]repository.CounterDelta, 0, len(b.pending))
	for _, d := range b.pending {
		out = append(out, d)
	}
	b.pending = make(map[int64]repository.CounterDelta)
	return out, nil
}

func (b *memoryBuffer) get(postID int64) repository.CounterDelta {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[postID]
}

func TestInteraction_DirectWrite(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewInteractionService(postRepo, nil, nil)
	ctx := context.Background()

	postRepo.On("IncrementCounters", ctx, int64(3), int64(1), int64(0)).Return(nil).Once()
	postRepo.On("IncrementCounters", ctx, int64(3), int64(0), int64(1)).Return(nil).Once()

	require.NoError(t, svc.View(ctx, 3))
	require.NoError(t, svc.Like(ctx, 3))
	postRepo.AssertExpectations(t)
}

func TestInteraction_DirectWriteUnknownPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewInteractionService(postRepo, nil, nil)
	ctx := context.Background()

	postRepo.On("IncrementCounters", ctx, int64(404), int64(1), int64(0)).Return(gorm.ErrRecordNotFound)

	err := svc.View(ctx, 404)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestInteraction_Buffered(t *testing.T) {
	postRepo := new(MockPostRepository)
	buffer := newMemoryBuffer()
	svc := NewInteractionService(postRepo, buffer, nil)
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(3)).Return(true, nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.View(ctx, 3))
	}
	require.NoError(t, svc.Like(ctx, 3))

	assert.Equal(t, repository.CounterDelta{PostID: 3, Views: 5, Likes: 1}, buffer.get(3))
	postRepo.AssertNotCalled(t, "IncrementCounters", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInteraction_BufferDownFallsBack(t *testing.T) {
	postRepo := new(MockPostRepository)
	buffer := newMemoryBuffer()
	buffer.addErr = errors.New("redis: connection refused")
	svc := NewInteractionService(postRepo, buffer, nil)
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(3)).Return(true, nil)
	postRepo.On("IncrementCounters", ctx, int64(3), int64(1), int64(0)).Return(nil)

	require.NoError(t, svc.View(ctx, 3))
	postRepo.AssertExpectations(t)
}

func TestInteraction_BufferDownWarnsOnce(t *testing.T) {
	postRepo := new(MockPostRepository)
	buffer := newMemoryBuffer()
	buffer.addErr = errors.New("redis: connection refused")
	var logs bytes.Buffer
	svc := NewInteractionService(postRepo, buffer, slog.New(slog.NewTextHandler(&logs, nil)))
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(3)).Return(true, nil)
	postRepo.On("IncrementCounters", ctx, int64(3), mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Like(ctx, 3))
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "counter_buffer_failed"))
	postRepo.AssertNumberOfCalls(t, "IncrementCounters", 5)
}

func TestCounterFlusher_FlushAndRequeue(t *testing.T) {
	postRepo := new(MockPostRepository)
	buffer := newMemoryBuffer()
	ctx := context.Background()

	require.NoError(t, buffer.Add(ctx, 1, 4, 2))
	require.NoError(t, buffer.Add(ctx, 2, 1, 0))
	require.NoError(t, buffer.Add(ctx, 3, 7, 0))

	postRepo.On("IncrementCounters", ctx, int64(1), int64(4), int64(2)).Return(nil)
	postRepo.On("IncrementCounters", ctx, int64(2), int64(1), int64(0)).Return(gorm.ErrRecordNotFound)
	postRepo.On("IncrementCounters", ctx, int64(3), int64(7), int64(0)).Return(errors.New("deadlock detected"))

	flusher := NewCounterFlusher(buffer, postRepo, time.Hour, nil)
	applied, err := flusher.Flush(ctx)

	assert.Equal(t, 1, applied)
	assert.Error(t, err)
	// failed delta is back in the buffer, the deleted post's is dropped
	assert.Equal(t, repository.CounterDelta{PostID: 3, Views: 7}, buffer.get(3))
	assert.Equal(t, repository.CounterDelta{}, buffer.get(2))
	assert.Equal(t, repository.CounterDelta{}, buffer.get(1))
}

func TestCounterFlusher_StopFlushes(t *testing.T) {
	postRepo := new(MockPostRepository)
	buffer := newMemoryBuffer()
	require.NoError(t, buffer.Add(context.Background(), 9, 2, 0))

	postRepo.On("IncrementCounters", mock.Anything, int64(9), int64(2), int64(0)).Return(nil).Once()

	flusher := NewCounterFlusher(buffer, postRepo, time.Hour, nil)
	flusher.Start()
	flusher.Stop()
	flusher.Stop()

	postRepo.AssertExpectations(t)
	assert.Equal(t, repository.CounterDelta{}, buffer.get(9))
}
