package game

import (
	"context"
	"time"
)

// RunLoop drives clock from a ticker until ctx is cancelled, frame returns
// false, or the clock is stopped.
//
// Each iteration ticks the clock and then calls frame (render, input polling).
// A clock that has not been started yet is still ticked (a no-op) so that a
// front end can start it from inside frame once its assets are ready.
func RunLoop(ctx context.Context, clock *Clock, interval time.Duration, frame func() bool) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			clock.Tick()
			if frame != nil && !frame() {
				return nil
			}
			if clock.State() == ClockStopped {
				return nil
			}
		}
	}
}
