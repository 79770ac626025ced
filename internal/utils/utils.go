package utils

import (
	"context"
	"time"
)

// WaitFor blocks for the given duration or until the context is done,
// whichever comes first. A non-positive duration returns immediately.
// The timer is released on cancellation rather than left running.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
