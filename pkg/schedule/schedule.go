// Package schedule provides a repeating task with cooperative cancellation,
// usable outside any UI lifecycle.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Handle stops future ticks of a repeating task. It does not abort a run
// already in flight.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the task and waits for the loop goroutine to exit. Safe to
// call more than once.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed when the loop goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Repeat runs fn immediately, then on every interval tick, until the
// returned handle is stopped or ctx is cancelled.
func Repeat(ctx context.Context, interval time.Duration, fn func(context.Context)) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)

		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()

	return h
}
