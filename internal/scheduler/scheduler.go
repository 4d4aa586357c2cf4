// Package scheduler drives housekeeping work (posting retention) on a fixed
// interval. The poll loop has its own cadence logic and does not use it.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately, then once per interval, until ctx ends. Task
// errors are logged under the given name and never stop the loop. Every
// blocks; callers put it on its own goroutine.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}
	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
