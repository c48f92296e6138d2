package clock

import (
	"context"
	"math/rand/v2"
	"time"
)

// Sleep waits for d or until ctx is done, whichever comes first. It returns ctx.Err()
// when the wait was cut short. A non-positive d only checks ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// Jitter returns a random duration in [0, fraction*d).
func Jitter(d time.Duration, fraction float64) time.Duration {
	limit := int64(float64(d) * fraction)
	if limit <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(limit))
}
