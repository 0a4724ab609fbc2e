package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// Responder writes an error response for status. Router-level middleware
// takes one so HTML pages and the JSON API can answer in their own format.
type Responder func(c *gin.Context, status int)

// JSONResponder answers with the JSON error envelope.
func JSONResponder(c *gin.Context, status int) {
	code, message := dto.ErrorCodeInternal, dto.MessageInternal
	if status == http.StatusServiceUnavailable {
		code, message = dto.ErrorCodeTimeout, "request timeout exceeded"
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message).WithTraceID(dto.GetTraceID(c)))
}

// Recovery turns a panic into a logged 500. A nil respond uses JSONResponder.
// Mount it first so it covers every other middleware.
func Recovery(logger *slog.Logger, respond Responder) gin.HandlerFunc {
	if respond == nil {
		respond = JSONResponder
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			// http.ErrAbortHandler is how net/http aborts a response; let it through.
			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
				panic(r)
			}

			logging.FromContextOr(c.Request.Context(), logger).ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", dto.GetTraceID(c)),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			respond(c, http.StatusInternalServerError)
		}()

		c.Next()
	}
}
