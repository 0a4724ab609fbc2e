package http

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
)

// Routes lists what Mount wires onto an engine. Nil handlers are not mounted.
type Routes struct {
	ServiceName string
	Logger      *slog.Logger

	Health *handlers.HealthHandler
	Quotes *handlers.QuoteHandler
	Admin  *handlers.AdminHandler

	// RequestTimeout applies to pages, /api and /admin but not to /-/.
	RequestTimeout time.Duration
}

// Mount installs the middleware chain, outermost first: recovery, request
// and correlation ids, tracing, HTTP metrics, access log. Page, API and admin
// groups additionally get the request timeout.
func Mount(engine *gin.Engine, r Routes) {
	engine.SetHTMLTemplate(views.Templates())

	engine.Use(
		middleware.Recovery(r.Logger, Respond),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cmp.Or(r.ServiceName, "quote-service")),
		telemetry.Middleware(),
		middleware.Logging(r.Logger),
	)
	engine.NoRoute(NoRoute)

	if r.Health != nil {
		r.Health.RegisterHealthRoutesOnEngine(engine)
	}

	deadline := middleware.Timeout(r.RequestTimeout, Respond)

	if r.Quotes != nil {
		r.Quotes.RegisterQuoteRoutes(engine.Group("", deadline), engine.Group(apiPrefix, deadline))
	}

	if r.Admin != nil {
		r.Admin.RegisterAdminRoutes(engine.Group("/admin", deadline))
	}
}
