package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-service/internal/domain"
)

// maxErrorBody bounds how much of an error response is read for a message.
const maxErrorBody = 64 << 10

// ErrorResponse is an upstream error body in any of the shapes seen in the
// wild: quotable's {"statusCode","statusMessage"}, a nested
// {"error":{"message"}} or a flat {"message"}.
type ErrorResponse struct {
	StatusCode    int         `json:"statusCode,omitempty"`
	StatusMessage string      `json:"statusMessage,omitempty"`
	Error         ErrorDetail `json:"error"`
	Message       string      `json:"message,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetMessage picks the first message present, quotable's form first.
func (e *ErrorResponse) GetMessage() string {
	for _, m := range []string{e.StatusMessage, e.Error.Message, e.Message} {
		if m != "" {
			return m
		}
	}

	return ""
}

// ParseErrorResponse returns nil unless body decodes to a message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var er ErrorResponse
	if json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&er) != nil || er.GetMessage() == "" {
		return nil
	}

	return &er
}

// statusReasons replace a missing upstream message.
var statusReasons = map[int]string{
	http.StatusNotFound:           "endpoint not found",
	http.StatusUnauthorized:       "access denied",
	http.StatusForbidden:          "access denied",
	http.StatusTooManyRequests:    "rate limit exceeded",
	http.StatusServiceUnavailable: "service temporarily unavailable",
}

// MapHTTPError turns a failed upstream call into a domain unavailable error.
// Pass the transport error as clientErr, or the non-2xx response as resp.
// A 2xx response maps to nil. The cause stays reachable with errors.Is and
// errors.As but is never part of the message.
func MapHTTPError(resp *http.Response, clientErr error, service, operation string) error {
	switch {
	case clientErr != nil:
		return domain.NewUnavailableErrorWithCause(service, transportReason(clientErr, operation), clientErr)
	case resp == nil:
		return domain.NewUnavailableError(service, "no response received")
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	}

	reason, ok := statusReasons[resp.StatusCode]
	if !ok {
		reason = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	}

	if resp.Body != nil {
		if er := ParseErrorResponse(resp.Body); er != nil {
			reason = er.GetMessage()
		}
	}

	return domain.NewUnavailableErrorWithCause(service, reason, &clients.StatusError{StatusCode: resp.StatusCode})
}

func transportReason(err error, operation string) string {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return "max retries exceeded during " + operation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return operation + " canceled"
	default:
		return operation + " failed"
	}
}
