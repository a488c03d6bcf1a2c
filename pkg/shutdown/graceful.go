// Package shutdown waits for a termination signal and then tears the process down.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"
)

// Hook releases one resource.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Wait blocks until SIGINT or SIGTERM arrives or ctx is done, then runs hooks in order, all
// sharing one timeout. Order matters: stop accepting traffic before closing what handlers use.
// The returned error joins every failed hook.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	<-sigCtx.Done()
	stop()

	return Run(timeout, hooks...)
}

// Run executes hooks in order. Once the timeout has passed the remaining hooks are skipped.
func Run(timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: skipped: %w", hook.Name, err))
			continue
		}
		if err := hook.Fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hook.Name, err))
		}
	}
	return errors.Join(errs...)
}
