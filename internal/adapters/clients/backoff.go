package clients

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/quote-service/internal/platform/config"
)

// backoff is the retry schedule: initial * multiplier^n, capped at ceiling,
// then spread by ±jitter of itself.
type backoff struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
	jitter     float64
	rnd        func() float64
}

func newBackoff(cfg config.RetryConfig) backoff {
	b := backoff{
		attempts:   max(cfg.MaxAttempts, 1),
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
		jitter:     min(max(cfg.JitterFactor, 0), 1),
		rnd:        rand.Float64, //nolint:gosec // jitter does not need crypto randomness
	}

	if b.multiplier < 1 {
		b.multiplier = 1
	}

	if b.ceiling <= 0 {
		b.ceiling = b.initial
	}

	return b
}

// delay is the pause before retry number n (n >= 1). A positive Retry-After
// hint replaces the computed value but still respects the ceiling.
func (b backoff) delay(n int, hint time.Duration) time.Duration {
	if hint > 0 {
		return min(hint, b.ceiling)
	}

	d := min(float64(b.initial)*math.Pow(b.multiplier, float64(n)), float64(b.ceiling))
	d += d * b.jitter * (2*b.rnd() - 1)

	return time.Duration(d)
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryableStatus is true for rate limiting and server-side failures.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// retryableErr is true for network failures and per-attempt timeouts.
// The caller's own deadline is checked before this is consulted.
func retryableErr(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}

// retryAfter understands the delta-seconds form only.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}

	return time.Duration(secs) * time.Second
}
