// Package dto holds the HTTP request and response shapes and the error envelope.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries a machine-readable code and a message safe to show.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Details maps field names to messages for validation failures.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeBadRequest  = "BAD_REQUEST"
)

// MessageInternal is shown for any failure whose details must stay server-side.
const MessageInternal = "an internal error occurred"

// NewErrorResponse builds an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails builds an envelope listing field problems.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID sets the trace id and returns the envelope.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

var statusByCode = map[string]int{
	ErrorCodeNotFound:    http.StatusNotFound,
	ErrorCodeValidation:  http.StatusBadRequest,
	ErrorCodeBadRequest:  http.StatusBadRequest,
	ErrorCodeUnavailable: http.StatusServiceUnavailable,
	ErrorCodeTimeout:     http.StatusGatewayTimeout,
}

// HTTPStatusFromCode maps an error code to its status; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// MapDomainError maps err to a status and envelope. Not-found and
// validation failures keep their message; store and upstream failures
// become a generic 500 so driver text never reaches a client.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var fields FieldErrors
	if errors.As(err, &fields) {
		return http.StatusBadRequest, NewErrorResponseWithDetails(ErrorCodeValidation, ErrValidation.Error(), ValidationErrors(fields))
	}

	if errors.Is(err, ErrBinding) {
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, "malformed request body")
	}

	var resp *ErrorResponse

	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		resp = NewErrorResponse(ErrorCodeNotFound, "resource not found")

		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			resp.Error.Message = nf.Error()
		}

	case domain.ErrValidation:
		resp = NewErrorResponse(ErrorCodeValidation, "invalid request")

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			resp.Error.Message = ve.Error()
			if ve.Field != "" {
				resp.Error.Details = map[string]string{ve.Field: ve.Message}
			}
		}

	default:
		resp = NewErrorResponse(ErrorCodeInternal, MessageInternal)
	}

	return HTTPStatusFromCode(resp.Error.Code), resp
}

// GetTraceID returns the request's trace id, falling back to its request id.
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetString("request_id")
}

// ErrorOption adjusts the envelope HandleError writes for a given status.
type ErrorOption func(resp *ErrorResponse, status int)

// WithServerMessage replaces the message of 5xx envelopes. Client errors keep
// their own message.
func WithServerMessage(message string) ErrorOption {
	return func(resp *ErrorResponse, status int) {
		if status >= http.StatusInternalServerError {
			resp.Error.Message = message
		}
	}
}

// HandleError writes err as a JSON envelope and aborts. Server-side failures
// are logged with their full cause and attached to the gin context.
func HandleError(c *gin.Context, err error, opts ...ErrorOption) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	for _, opt := range opts {
		opt(resp, status)
	}

	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)

		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, resp)
}
