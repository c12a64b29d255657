// Package retry provides a configurable retry mechanism for operations that
// may fail transiently. It supports exponential backoff, jitter strategies,
// and attempt tracking.
//
// Basic usage:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return saveSnapshot(ctx)
//	})
//
// With custom options:
//
//	err := retry.Do(ctx, operation,
//	    retry.WithAttempts(5),
//	    retry.WithBackoff(retry.ExpBackoff{Base: 100*time.Millisecond, Max: 5*time.Second, Factor: 2}),
//	    retry.WithJitter(retry.FullJitter),
//	)
package retry

import (
	"context"
	"errors"
	"time"
)

const (
	defaultAttempts      = 4
	defaultBaseDelay     = 100 // milliseconds
	defaultMaxDelay      = 2   // seconds
	defaultBackoffFactor = 2.0
)

// Runner is an interface for executing operations with retry logic.
// It handles errors and automatically retries based on the configured strategy.
type Runner interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
}

// NewRunner creates a new Runner with the specified options.
// If no options are provided, it uses sensible defaults:
//   - 4 attempts (initial call + 3 retries)
//   - Exponential backoff: 100ms base, 2s max, factor of 2
//   - Full jitter to prevent thundering herd
//
// Example:
//
//	runner := retry.NewRunner(retry.WithAttempts(5))
//	err := runner.Do(ctx, operation)
func NewRunner(opts ...Option) Runner {
	intOpts := &options{
		attempts: Attempts(defaultAttempts),
		backoff: ExpBackoff{
			Base:   defaultBaseDelay * time.Millisecond,
			Max:    defaultMaxDelay * time.Second,
			Factor: defaultBackoffFactor,
		},
		jitter: FullJitter,
	}

	for _, option := range opts {
		option(intOpts)
	}

	return &runnerImpl{
		opts: intOpts,
	}
}

// runnerImpl is the concrete implementation of the Runner interface.
type runnerImpl struct {
	opts *options
}

// Do executes the provided function with retry logic according to the runner's configuration.
func (r *runnerImpl) Do(ctx context.Context, f func(ctx context.Context) error) error {
	return do(ctx, r.opts, f)
}

// do is the core retry loop. It returns:
//   - nil if the operation succeeds
//   - ctx.Err() if the context is canceled
//   - the permanent error if one is returned
//   - the last error once all attempts are exhausted
func do(ctx context.Context, opts *options, operation func(ctx context.Context) error) error {
	var err error

	// Loop until we reach the maximum attempts or attempts is 0 (infinite retries)
	for attemptIndex := uint(0); Attempts(attemptIndex) < opts.attempts || opts.attempts == 0; attemptIndex++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Add attempt number to context for tracking
		err = operation(withAttempt(ctx, attemptIndex))
		if err == nil {
			return nil
		}

		// Permanent errors stop the loop immediately
		var retryErr Error
		if errors.As(err, &retryErr) && !retryErr.Temporary() {
			return err
		}

		delay := opts.jitter.jitter(opts.backoff.Delay(attemptIndex))

		// Wait for the delay period, respecting context cancellation
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

// Do is a convenience function that creates a Runner and executes the provided
// function with retry logic in a single call. It uses the default configuration
// unless options are provided.
//
// Example:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return writeJournal(ctx)
//	}, retry.WithAttempts(5))
func Do(ctx context.Context, f func(ctx context.Context) error, opts ...Option) error {
	return NewRunner(opts...).Do(ctx, f)
}
