package gtlang

import (
	"context"
	"errors"
	"time"

	"github.com/jpillora/backoff"
)

// RetryConfig controls how failed provider requests are repeated.
type RetryConfig struct {
	MaxRetries int           // attempts after the first one
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration // cap for the doubling delay
	Jitter     bool

	// OnRetry, when set, is called before each wait with the number of the
	// attempt that failed (starting at 1), its error and the delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig returns the retry behavior used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Jitter:     true,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry calls fn until it succeeds, fails with an error IsRetryable
// rejects, or MaxRetries retries are used up. Delays double from BaseDelay
// up to MaxDelay. The last error is returned.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var zero T
	b := &backoff.Backoff{Min: cfg.BaseDelay, Max: cfg.MaxDelay, Factor: 2, Jitter: cfg.Jitter}

	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		attempt := int(b.Attempt()) + 1
		if !IsRetryable(err) || attempt > cfg.MaxRetries {
			return zero, err
		}

		delay := b.Duration()
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// IsRetryable reports whether err is a ProviderError marked retryable.
// Cancellation and deadline errors never are, even when wrapped in one.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Retryable
}

// RetryableProvider repeats failed requests of the wrapped provider.
type RetryableProvider struct {
	provider AIProvider
	config   RetryConfig
}

// NewRetryableProvider wraps provider with cfg.
func NewRetryableProvider(provider AIProvider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{provider: provider, config: cfg}
}

// Translate forwards req, retrying per the configuration.
func (p *RetryableProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	return WithRetry(ctx, p.config, func() ([]string, error) {
		return p.provider.Translate(ctx, req)
	})
}
