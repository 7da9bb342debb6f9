package frontend

import (
	"context"
	"time"
)

// Loop runs the frame cadence of the polling frontends. poll updates the
// input state and returns false once the user closed the frontend, render
// shows the current picture. With a zero interval frames run back to back.
//
// Loop returns nil when the frontend was closed, ctx.Err() on cancellation
// and otherwise the error returned by frame.
func Loop(ctx context.Context, interval time.Duration, frame func() error, poll func() bool, render func()) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !poll() {
			return nil
		}

		err := frame()
		render()
		if err != nil {
			return err
		}

		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}
