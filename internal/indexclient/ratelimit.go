// # internal/indexclient/ratelimit.go
package indexclient

import (
	"context"

	"pypm/internal/shared/util"
)

// limiter throttles outbound lookups to a configured rate, wrapping
// internal/shared/util.Limiter's token-bucket directly rather than
// re-deriving one — the shape already fits this client's needs exactly.
type limiter struct {
	inner *util.Limiter
}

func newLimiter(perSecond float64, burst int) *limiter {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 10
	}
	return &limiter{inner: util.NewLimiter(perSecond, burst)}
}

func (l *limiter) wait(ctx context.Context) error {
	return l.inner.Wait(ctx, 1)
}
