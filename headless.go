package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// RunHeadless drives sim on a fixed-interval ticker until ctx is cancelled,
// Stop is called, or maxTicks frames have run (0 means no limit). Ticks run on
// the calling goroutine one after another; a slow tick delays the next one
// instead of overlapping it.
func RunHeadless(ctx context.Context, sim *Simulation, maxTicks int) error {
	ticker := time.NewTicker(sim.TickInterval())
	defer ticker.Stop()

	for {
		err := sim.Tick()
		switch {
		case errors.Is(err, ErrStopped):
			return nil
		case err != nil:
			return err
		}
		if maxTicks > 0 && sim.TickCount >= maxTicks {
			sim.Stop()
			return nil
		}

		select {
		case <-ctx.Done():
			sim.Stop()
			return nil
		case <-ticker.C:
		}
	}
}
