package gtlang

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how fast suggestions are requested.
type RateLimitConfig struct {
	RequestsPerMinute int // default 60
	BurstSize         int // default RequestsPerMinute
	TextsPerMinute    int // texts sent per minute across requests, 0 for no limit
}

// RateLimiter holds a request bucket and an optional text bucket. Both start
// full.
type RateLimiter struct {
	requests *rate.Limiter
	texts    *rate.Limiter
}

// NewRateLimiter builds the buckets described by cfg.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	r := &RateLimiter{requests: rate.NewLimiter(perMinute(rpm), burst)}
	if cfg.TextsPerMinute > 0 {
		r.texts = rate.NewLimiter(perMinute(cfg.TextsPerMinute), cfg.TextsPerMinute)
	}
	return r
}

func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60)
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.requests.Wait(ctx)
}

// WaitTexts blocks until n texts may be sent. Batches larger than the text
// bucket are admitted in bucket-sized steps.
func (r *RateLimiter) WaitTexts(ctx context.Context, n int) error {
	if r.texts == nil {
		return nil
	}
	step := r.texts.Burst()
	for n > 0 {
		k := min(n, step)
		if err := r.texts.WaitN(ctx, k); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// Allow takes a request token if one is available, without blocking.
func (r *RateLimiter) Allow() bool {
	return r.requests.Allow()
}

// Tokens returns the request tokens currently available.
func (r *RateLimiter) Tokens() float64 {
	return r.requests.Tokens()
}

// RateLimitedProvider delays requests to stay within a RateLimiter.
type RateLimitedProvider struct {
	provider AIProvider
	limiter  *RateLimiter
}

// NewRateLimitedProvider wraps provider with a limiter built from cfg.
func NewRateLimitedProvider(provider AIProvider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg),
	}
}

// Translate waits for a request token and for one text token per text, then
// forwards req. Waiting is cut short by ctx and is never retryable.
func (p *RateLimitedProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	if err := p.limiter.WaitTexts(ctx, len(req.Texts)); err != nil {
		return nil, &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	return p.provider.Translate(ctx, req)
}

// Limiter returns the limiter in use.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}
