// Package clients provides the instrumented HTTP client used to reach upstream services.
package clients

import (
	"errors"
	"fmt"
)

// Transport-level failures. Callers translate them into domain errors.
var (
	// ErrCircuitOpen is returned without contacting the upstream while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is the last retryable status an upstream answered with.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded %d", e.StatusCode)
}
