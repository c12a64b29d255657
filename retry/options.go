package retry

// Option is a function that configures a Runner.
// Options follow the functional options pattern for flexible configuration.
type Option func(*options)

// options holds the internal configuration for retry behavior.
type options struct {
	attempts Attempts // Maximum number of attempts
	backoff  Backoff  // Backoff strategy for calculating delays
	jitter   Jitter   // Jitter strategy for randomizing delays
}

// WithBackoff configures the backoff strategy for calculating retry delays.
//
// Example:
//
//	backoff := retry.ExpBackoff{
//	    Base:   100 * time.Millisecond,
//	    Max:    10 * time.Second,
//	    Factor: 2.0,
//	}
//	runner := retry.NewRunner(retry.WithBackoff(backoff))
func WithBackoff(b Backoff) Option {
	return func(o *options) {
		o.backoff = b
	}
}

// WithAttempts configures the maximum number of attempts.
// A value of 0 means unlimited retries (use with caution).
//
// Example:
//
//	runner := retry.NewRunner(retry.WithAttempts(5))
func WithAttempts(a Attempts) Option {
	return func(o *options) {
		o.attempts = a
	}
}

// WithJitter configures the jitter strategy for randomizing retry delays.
// Jitter helps prevent thundering herd problems.
//
// Example:
//
//	runner := retry.NewRunner(retry.WithJitter(retry.FullJitter))
func WithJitter(j Jitter) Option {
	return func(o *options) {
		o.jitter = j
	}
}
