package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// Page titles and messages of the HTML error page.
const (
	titleNotFound    = "Cita no encontrada"
	titleInvalid     = "No se pudo guardar la cita"
	titleFailed      = "Algo salió mal"
	titleUnavailable = "Servicio no disponible"

	messageNotFound = "La cita solicitada no existe o fue eliminada."
	messageInvalid  = "Revise los campos del formulario."
	messageFailed   = "No se pudo completar la operación. Inténtelo de nuevo más tarde."
	messageNoRoute  = "La página solicitada no existe."
	messageTimeout  = "La solicitud tardó demasiado."
)

// ErrorPage renders the HTML error page for status. The router uses it for
// panics, timeouts and unknown routes outside the JSON API.
func ErrorPage(c *gin.Context, status int) {
	page := views.ErrorPage{Status: status, TraceID: dto.GetTraceID(c)}

	switch status {
	case http.StatusNotFound:
		page.Title, page.Message = titleNotFound, messageNoRoute
	case http.StatusServiceUnavailable:
		page.Title, page.Message = titleUnavailable, messageTimeout
	default:
		page.Title, page.Message = titleFailed, messageFailed
	}

	c.Abort()
	c.HTML(status, views.PageError, page)
}

// renderError renders err as an HTML page. Missing quotes are 404; every
// other failure is 500. Validation messages are shown, store details never are.
func renderError(c *gin.Context, err error) {
	page := views.ErrorPage{
		Status:  http.StatusInternalServerError,
		Title:   titleFailed,
		Message: messageFailed,
		TraceID: dto.GetTraceID(c),
	}

	var ve *domain.ValidationError

	switch {
	case domain.IsNotFound(err):
		page.Status, page.Title, page.Message = http.StatusNotFound, titleNotFound, messageNotFound

	case errors.As(err, &ve):
		page.Title, page.Message = titleInvalid, messageInvalid
		page.Details = []string{ve.Field + ": " + ve.Message}

	case dto.IsValidationError(err):
		page.Title, page.Message = titleInvalid, messageInvalid
		page.Details = fieldDetails(dto.ValidationErrors(err))

	case errors.Is(err, dto.ErrBinding):
		page.Title, page.Message = titleInvalid, messageInvalid

	default:
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.String("path", c.Request.URL.Path),
			slog.String("trace_id", page.TraceID),
		)
	}

	_ = c.Error(err)
	c.Abort()
	c.HTML(page.Status, views.PageError, page)
}

// fieldDetails formats field errors in a stable order.
func fieldDetails(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	slices.Sort(names)

	details := make([]string, 0, len(names))
	for _, name := range names {
		details = append(details, name+": "+fields[name])
	}

	return details
}

func quoteView(q *domain.Quote) views.QuoteView {
	return views.QuoteView{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		CreatedAt: q.CreatedAt,
	}
}
