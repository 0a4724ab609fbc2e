package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// Logging writes one "request completed" line per request. Probes under /-/
// and paths under skipPrefixes are not logged.
func Logging(logger *slog.Logger, skipPrefixes ...string) gin.HandlerFunc {
	quiet := append([]string{"/-/"}, skipPrefixes...)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.ContainsFunc(quiet, func(p string) bool { return strings.HasPrefix(path, p) }) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()

		line := make([]slog.Attr, 0, 8)
		line = append(line,
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		)

		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			line = append(line, slog.String("errors", errs.String()))
		}

		logging.FromContextOr(ctx, logger).LogAttrs(ctx, levelFor(status), "request completed", line...)
	}
}

// levelFor logs 5xx as errors and 4xx as warnings.
func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
