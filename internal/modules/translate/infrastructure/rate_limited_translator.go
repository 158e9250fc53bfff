package infrastructure

import (
	"context"
	"fmt"

	"github.com/sglre6355/hibiki/internal/modules/translate/application/ports"
	"golang.org/x/time/rate"
)

// Compile-time check that RateLimitedTranslator implements ports.Translator.
var _ ports.Translator = (*RateLimitedTranslator)(nil)

// RateLimitedTranslator throttles calls to another Translator.
type RateLimitedTranslator struct {
	next    ports.Translator
	limiter *rate.Limiter
}

// NewRateLimitedTranslator allows perSecond calls per second with bursts of burst.
// A non-positive perSecond disables the limit.
func NewRateLimitedTranslator(next ports.Translator, perSecond float64, burst int) *RateLimitedTranslator {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitedTranslator{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Translate waits for a token, then delegates.
func (r *RateLimitedTranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Translate(ctx, text, targetLocale)
}
