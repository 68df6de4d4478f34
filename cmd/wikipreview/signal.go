package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
)

// ErrInterrupted is the cancellation cause when a stop signal ends a run.
// Files not yet rendered report it instead of a result.
var ErrInterrupted = errors.New("interrupted")

// withStopSignals returns a context canceled with an ErrInterrupted cause
// when one of stopSignals arrives. stop releases the signal handler and is
// safe to call more than once.
func withStopSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, stopSignals...)

	released := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			cancel(fmt.Errorf("%w by %s", ErrInterrupted, sig))
		case <-ctx.Done():
		case <-released:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(released)
			cancel(context.Canceled)
		})
	}
	return ctx, stop
}
