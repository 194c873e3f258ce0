package retry

import (
	"context"
	"time"
)

const maxShift = 30

// Delay returns the wait before retry number attempt (1-indexed).
// With exponential backoff it doubles per retry, otherwise it stays at base.
func Delay(attempt int, base time.Duration, exponential bool) time.Duration {
	if !exponential || attempt <= 1 {
		return base
	}
	shift := attempt - 1
	if shift > maxShift {
		shift = maxShift
	}
	return base * time.Duration(1<<uint(shift))
}

// Sleep waits for d or until ctx is done.
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
