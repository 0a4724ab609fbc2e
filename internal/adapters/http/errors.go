package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-service/internal/domain"
)

const apiPrefix = "/api"

// isAPIRequest reports whether the request targets the JSON API.
func isAPIRequest(c *gin.Context) bool {
	return c.Request.URL.Path == apiPrefix || strings.HasPrefix(c.Request.URL.Path, apiPrefix+"/")
}

// Respond writes a router-level failure (panic, timeout) in the format the
// caller expects: the JSON envelope under /api, the HTML error page elsewhere.
func Respond(c *gin.Context, status int) {
	if isAPIRequest(c) {
		middleware.JSONResponder(c, status)
		return
	}

	handlers.ErrorPage(c, status)
}

// NoRoute answers requests no route matched.
func NoRoute(c *gin.Context) {
	if isAPIRequest(c) {
		dto.HandleError(c, domain.NewNotFoundError("route", ""))
		return
	}

	handlers.ErrorPage(c, http.StatusNotFound)
}
