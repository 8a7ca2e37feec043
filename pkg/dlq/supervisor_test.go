package dlq

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSuperviseRestartsAfterPanic(t *testing.T) {
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())

	fn := func(ctx context.Context) error {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			panic("boom")
		}
		cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		Supervise(ctx, "test-loop", fn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not return after cancellation")
	}
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestSuperviseRestartsAfterError(t *testing.T) {
	var calls int32
	ctx, cancel := context.WithCancel(context.Background())

	fn := func(ctx context.Context) error {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return errors.New("transient")
		}
		cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		Supervise(ctx, "test-loop", fn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not return after cancellation")
	}
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestSuperviseStopsOnCancelBeforeFirstRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	Supervise(ctx, "test-loop", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.False(t, called)
}
