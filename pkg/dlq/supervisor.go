package dlq

import (
	"context"
	"fmt"
	"time"

	"durableq/pkg/logger"
	"durableq/pkg/metrics"
)

// maxBackoff caps the exponential restart delay.
const maxBackoff = 300 * time.Second

// Supervise runs fn repeatedly until ctx is cancelled, restarting it if it
// panics or returns an error. Consecutive restarts back off as
// min(2^restarts, 300) seconds; a successful run (fn returns nil without
// panicking) resets the counter. name identifies the supervised loop in
// log lines.
func Supervise(ctx context.Context, name string, fn func(ctx context.Context) error) {
	restarts := 0
	for {
		if ctx.Err() != nil {
			return
		}

		err := runOnce(ctx, fn)
		if err == nil {
			restarts = 0
		} else {
			logger.Error("dlq_supervisor_restart", "loop", name, "restarts", restarts, "error", err)
			metrics.SupervisorRestartsTotal.WithLabelValues(name).Inc()
			restarts++
		}

		if ctx.Err() != nil {
			return
		}

		backoff := time.Duration(1<<uint(minInt(restarts, 9))) * time.Second
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// runOnce calls fn, converting a panic into an error so the caller's
// restart loop sees a uniform failure signal regardless of how fn failed.
func runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
