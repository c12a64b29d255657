package utils

import (
	"context"
	"time"
)

// TickerWithContext creates a context-aware ticker that sends the current time
// on a channel at regular intervals. Unlike time.Ticker, this ticker stops and
// cleans up its resources when the provided context is canceled, at which point
// the channel is closed.
//
// The duration must be positive; zero or negative durations cause the
// underlying time.NewTicker to panic.
//
// Example:
//
//	ticker := utils.TickerWithContext(ctx, 1*time.Second)
//	for t := range ticker {
//	    fmt.Println("Tick at", t)
//	}
func TickerWithContext(ctx context.Context, duration time.Duration) <-chan time.Time {
	if ctx == nil {
		//nolint:contextcheck // Nil check, creates new context intentionally
		ctx = context.TODO()
	}

	ticker := time.NewTicker(duration)
	out := make(chan time.Time)

	go func() {
		// Stop the ticker before closing so nothing sends on a closed channel
		defer func() {
			ticker.Stop()

			close(out)
		}()

		for {
			select {
			case <-ctx.Done():
				return

			// Forwarding blocks if no receiver is ready, which provides
			// natural backpressure
			case val := <-ticker.C:
				out <- val
			}
		}
	}()

	return out
}
