package util

import (
	"context"
	"time"
)

// Delay blocks for d, honoring context cancellation. A non-positive d
// returns immediately. Used by the mock backend to simulate network
// round trips.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
