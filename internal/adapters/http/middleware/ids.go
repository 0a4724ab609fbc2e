package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID follows a transaction across services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin key holding the request id.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin key holding the correlation id.
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds accepted inbound ids; longer or non-printable ones are replaced.
	maxIDLength = 128
)

type idConfig struct {
	header string
	ginKey string
	enrich []func(ctx context.Context, id string) context.Context
}

// RequestID reuses a well-formed X-Request-ID or generates a UUID. The id is
// echoed in the response, stored on the gin context and the request context,
// and attached to the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		enrich: []func(context.Context, string) context.Context{ContextWithRequestID, logging.WithRequestID},
	})
}

// CorrelationID does for X-Correlation-ID what RequestID does for X-Request-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		enrich: []func(context.Context, string) context.Context{ContextWithCorrelationID, logging.WithCorrelationID},
	})
}

func idMiddleware(cfg idConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.header, id)

		ctx := c.Request.Context()
		for _, enrich := range cfg.enrich {
			ctx = enrich(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the request id from the gin context, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation id from the gin context, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
