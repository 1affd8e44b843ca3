package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/coordinator"
	"pricewatch/internal/logger"
)

type runnerFunc func(ctx context.Context) (coordinator.Result, error)

func (f runnerFunc) Run(ctx context.Context) (coordinator.Result, error) { return f(ctx) }

func runAsync(s *Scheduler, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func TestScheduler_RunsImmediately(t *testing.T) {
	calls := make(chan struct{}, 10)
	r := runnerFunc(func(context.Context) (coordinator.Result, error) {
		calls <- struct{}{}
		return coordinator.Result{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(New(r, time.Hour, logger.Discard()), ctx)

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("runner not called at start")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestScheduler_ContinuesAfterErrors(t *testing.T) {
	var calls atomic.Int32
	r := runnerFunc(func(context.Context) (coordinator.Result, error) {
		calls.Add(1)
		return coordinator.Result{}, errors.New("site down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(New(r, time.Second, logger.Discard()), ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}

func TestScheduler_NoOverlap(t *testing.T) {
	var active, maxActive, calls atomic.Int32
	r := runnerFunc(func(context.Context) (coordinator.Result, error) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		calls.Add(1)
		time.Sleep(1500 * time.Millisecond)
		return coordinator.Result{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3500*time.Millisecond)
	defer cancel()

	require.NoError(t, New(r, time.Second, logger.Discard()).Run(ctx))

	assert.Equal(t, int32(1), maxActive.Load())
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestScheduler_InvalidInterval(t *testing.T) {
	r := runnerFunc(func(context.Context) (coordinator.Result, error) { return coordinator.Result{}, nil })

	err := New(r, 0, logger.Discard()).Run(context.Background())
	assert.Error(t, err)
}
