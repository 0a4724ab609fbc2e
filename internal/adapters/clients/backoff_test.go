package clients

import (
	"context"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quote-service/internal/platform/config"
)

func fixedBackoff(jitter, rnd float64) backoff {
	b := newBackoff(config.RetryConfig{
		MaxAttempts:     4,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		JitterFactor:    jitter,
	})
	b.rnd = func() float64 { return rnd }

	return b
}

func TestBackoff_Delay(t *testing.T) {
	tests := []struct {
		name   string
		jitter float64
		rnd    float64
		n      int
		hint   time.Duration
		want   time.Duration
	}{
		{"first retry", 0, 0.5, 1, 0, 200 * time.Millisecond},
		{"second retry", 0, 0.5, 2, 0, 400 * time.Millisecond},
		{"capped", 0, 0.5, 10, 0, time.Second},
		{"jitter low edge", 0.25, 0, 1, 0, 150 * time.Millisecond},
		{"jitter high edge", 0.25, 1, 1, 0, 250 * time.Millisecond},
		{"retry-after honoured", 0.25, 1, 1, 300 * time.Millisecond, 300 * time.Millisecond},
		{"retry-after capped", 0, 0.5, 1, time.Minute, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixedBackoff(tt.jitter, tt.rnd).delay(tt.n, tt.hint))
		})
	}
}

func TestNewBackoff_Clamps(t *testing.T) {
	b := newBackoff(config.RetryConfig{InitialInterval: 50 * time.Millisecond, JitterFactor: 3, Multiplier: 0.5})

	assert.Equal(t, 1, b.attempts)
	assert.Equal(t, 50*time.Millisecond, b.ceiling)
	assert.InDelta(t, 1.0, b.multiplier, 0)
	assert.InDelta(t, 1.0, b.jitter, 0)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}

// timeoutErr is a net.Error reporting a timeout.
type timeoutErr struct{ timeout bool }

func (e timeoutErr) Error() string   { return "i/o timeout" }
func (e timeoutErr) Timeout() bool   { return e.timeout }
func (e timeoutErr) Temporary() bool { return e.timeout }

func TestRetryableErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"network timeout", timeoutErr{timeout: true}, true},
		{"other net error", timeoutErr{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryableErr(tt.err))
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	for status, want := range map[int]bool{200: false, 400: false, 404: false, 429: true, 500: true, 503: true} {
		assert.Equal(t, want, retryableStatus(status), status)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"3":                             3 * time.Second,
		" 2 ":                           2 * time.Second,
		"":                              0,
		"-1":                            0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}

	for v, want := range tests {
		h := http.Header{}
		h.Set("Retry-After", v)
		assert.Equal(t, want, retryAfter(h), v)
	}
}
