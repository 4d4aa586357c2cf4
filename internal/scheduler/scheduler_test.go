package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEveryRunsOnceThenStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := 0
	done := make(chan struct{})
	go func() {
		Every(ctx, time.Hour, "test-task", func(context.Context) error {
			runs++
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Every must return once the context ends")
	}
	if runs != 1 {
		t.Errorf("task ran %d times, want exactly the immediate run", runs)
	}
}

func TestEveryKeepsGoingAfterTaskError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 4)
	go Every(ctx, 10*time.Millisecond, "failing-task", func(context.Context) error {
		runs <- struct{}{}
		return errors.New("boom")
	})

	// the immediate run plus at least one ticked run despite the errors
	for i := 0; i < 2; i++ {
		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d never happened; errors must not stop the loop", i)
		}
	}
}
