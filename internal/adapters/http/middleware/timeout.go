package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// Timeout puts a deadline on the request context. Handlers run on the
// request goroutine and must honor ctx, as the store and upstream calls do.
// When the deadline passed and nothing was written, respond answers 503;
// nil means JSONResponder. A non-positive timeout disables the middleware.
func Timeout(timeout time.Duration, respond Responder) gin.HandlerFunc {
	if timeout <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	if respond == nil {
		respond = JSONResponder
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		written := c.Writer.Written()
		logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
			slog.String("route", c.FullPath()),
			slog.Duration("timeout", timeout),
			slog.Bool("response_written", written),
		)

		if !written {
			respond(c, http.StatusServiceUnavailable)
		}
	}
}
