package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotepage/internal/domain"
)

func TestParallel_CollectsResultsInOrder(t *testing.T) {
	fns := []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "first", nil },
		func(context.Context) (string, error) { return "second", nil },
		func(context.Context) (string, error) { return "third", nil },
	}

	results, err := Parallel(context.Background(), fns...)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, results)
}

func TestParallel_FirstErrorCancelsSiblings(t *testing.T) {
	blockerStarted := make(chan struct{})

	fns := []func(context.Context) (string, error){
		func(ctx context.Context) (string, error) {
			close(blockerStarted)
			<-ctx.Done()
			return "", ctx.Err()
		},
		func(context.Context) (string, error) {
			<-blockerStarted
			return "", errors.New("draw failed")
		},
	}

	results, err := Parallel(context.Background(), fns...)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "parallel execution failed")
	assert.Contains(t, err.Error(), "draw failed")
}

func TestParallel2_ReturnsBothResults(t *testing.T) {
	quote, count, err := Parallel2(context.Background(),
		func(context.Context) (*domain.Quote, error) {
			return &domain.Quote{ID: "1", Content: "🎯 Focus on progress, not perfection."}, nil
		},
		func(context.Context) (int, error) {
			return 5, nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "1", quote.ID)
	assert.Equal(t, 5, count)
}

func TestParallel2_ErrorZeroesResults(t *testing.T) {
	quote, count, err := Parallel2(context.Background(),
		func(context.Context) (*domain.Quote, error) {
			return &domain.Quote{ID: "1"}, nil
		},
		func(context.Context) (int, error) {
			return 0, errors.New("count unavailable")
		},
	)

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.Zero(t, count)
}

func TestParallel3_ReturnsAllResults(t *testing.T) {
	first, second, third, err := Parallel3(context.Background(),
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (int, error) { return 2, nil },
		func(context.Context) (bool, error) { return true, nil },
	)

	require.NoError(t, err)
	assert.Equal(t, "a", first)
	assert.Equal(t, 2, second)
	assert.True(t, third)
}

func TestParallelLimit_BoundsConcurrency(t *testing.T) {
	var current, peak int32

	var once sync.Once

	release := make(chan struct{})

	fns := make([]func(context.Context) (int, error), 8)
	for i := range fns {
		fns[i] = func(context.Context) (int, error) {
			cur := atomic.AddInt32(&current, 1)
			defer atomic.AddInt32(&current, -1)

			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}

			// Rendezvous: hold until two tasks run at once, proving parallelism.
			if cur == 2 {
				once.Do(func() { close(release) })
			}

			<-release

			return i, nil
		}
	}

	results, err := ParallelLimit(context.Background(), 2, fns...)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, results)
	assert.Equal(t, int32(2), atomic.LoadInt32(&peak), "exactly the limit should run at once")
}

func TestParallelPartial_CollectsSuccessesAndFailures(t *testing.T) {
	failure := errors.New("render failed")

	fns := []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "page-1", nil },
		func(context.Context) (string, error) { return "", failure },
		func(context.Context) (string, error) { return "page-3", nil },
	}

	results := ParallelPartial(context.Background(), fns...)

	require.Len(t, results, 3)
	assert.Equal(t, "page-1", results[0].Value)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, failure)
	assert.Equal(t, "page-3", results[2].Value)
	assert.NoError(t, results[2].Err)
}

func TestParallelPartialLimit_DoesNotCancelOnError(t *testing.T) {
	fns := []func(context.Context) (int, error){
		func(context.Context) (int, error) { return 0, errors.New("first failed") },
		func(context.Context) (int, error) { return 2, nil },
		func(context.Context) (int, error) { return 3, nil },
		func(context.Context) (int, error) { return 4, nil },
	}

	results := ParallelPartialLimit(context.Background(), 2, fns...)

	require.Len(t, results, 4)
	assert.Error(t, results[0].Err)

	for i := 1; i < len(results); i++ {
		assert.NoError(t, results[i].Err, "later tasks should still run after a failure")
		assert.Equal(t, i+1, results[i].Value)
	}
}

func TestFanOut_ProcessesAllItems(t *testing.T) {
	quotes := []domain.Quote{
		{ID: "1", Content: "💡 Believe in yourself — you’re unstoppable!"},
		{ID: "2", Content: "🚀 Every great dream begins with a dreamer."},
		{ID: "3", Content: "🔥 The best time to start was yesterday. The next best time is now."},
		{ID: "4", Content: "🌟 Code. Deploy. Repeat. Success follows consistency."},
		{ID: "5", Content: "🎯 Focus on progress, not perfection."},
	}

	var mu sync.Mutex

	processed := make(map[string]bool)

	err := FanOut(context.Background(), 3, quotes, func(_ context.Context, q domain.Quote) error {
		mu.Lock()
		defer mu.Unlock()
		processed[q.ID] = true
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, processed, len(quotes))
}

func TestFanOut_PropagatesWorkerError(t *testing.T) {
	quotes := []domain.Quote{
		{ID: "1", Content: "one"},
		{ID: "2", Content: "two"},
		{ID: "3", Content: "three"},
	}

	err := FanOut(context.Background(), 2, quotes, func(_ context.Context, q domain.Quote) error {
		if q.ID == "2" {
			return errors.New("prefetch failed")
		}
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fan out failed")
	assert.Contains(t, err.Error(), "prefetch failed")
}

func TestFanOut_NoItems(t *testing.T) {
	var calls int32

	err := FanOut(context.Background(), 2, []domain.Quote{}, func(context.Context, domain.Quote) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls), "worker should never be called without items")
}
