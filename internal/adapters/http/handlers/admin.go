package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/adapters/http/views"
	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// adminPath is where every successful admin write redirects.
const adminPath = "/admin"

// AdminHandler serves the administrative pages. Writes answer with a
// 303 redirect to the listing (post/redirect/get).
type AdminHandler struct {
	quotes   *app.QuoteService
	importer *app.ImportService
}

// NewAdminHandler creates an admin handler. A nil importer disables /admin/import.
func NewAdminHandler(quotes *app.QuoteService, importer *app.ImportService) *AdminHandler {
	return &AdminHandler{quotes: quotes, importer: importer}
}

// List handles GET /admin.
func (h *AdminHandler) List(c *gin.Context) {
	snapshot, err := h.quotes.AdminOverview(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	page := views.AdminListPage{
		Quotes: make([]views.QuoteView, 0, len(snapshot.Quotes)),
		Total:  snapshot.Total,
	}

	for _, q := range snapshot.Quotes {
		page.Quotes = append(page.Quotes, quoteView(q))
	}

	if h.importer != nil {
		page.ImportMax = h.importer.MaxBatch()
	}

	c.HTML(http.StatusOK, views.PageAdminList, page)
}

// NewForm handles GET /admin/new.
func (h *AdminHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageAdminForm, views.AdminFormPage{Action: adminPath + "/new"})
}

// Create handles POST /admin/new with a form or JSON body {text, author}.
func (h *AdminHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		renderError(c, err)
		return
	}

	if _, err := h.quotes.Create(c.Request.Context(), req.Draft()); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, adminPath)
}

// EditForm handles GET /admin/edit/:id.
func (h *AdminHandler) EditForm(c *gin.Context) {
	id := c.Param("id")

	quote, err := h.quotes.GetForEdit(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, views.PageAdminForm, views.AdminFormPage{
		ID:     quote.ID,
		Action: adminPath + "/edit/" + quote.ID,
		Text:   quote.Text,
		Author: quote.Author,
	})
}

// Edit handles POST /admin/edit/:id.
func (h *AdminHandler) Edit(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		renderError(c, err)
		return
	}

	if _, err := h.quotes.Edit(c.Request.Context(), c.Param("id"), req.Draft()); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, adminPath)
}

// Delete handles POST /admin/delete/:id. Deleting an absent quote succeeds.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.quotes.Remove(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, adminPath)
}

// Import handles POST /admin/import with a count field.
func (h *AdminHandler) Import(c *gin.Context) {
	var req dto.ImportRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		renderError(c, err)
		return
	}

	result, err := h.importer.Import(c.Request.Context(), req.Count)
	if err != nil {
		renderError(c, err)
		return
	}

	logging.FromContext(c.Request.Context()).InfoContext(c.Request.Context(), "quotes imported",
		slog.Int("requested", result.Requested),
		slog.Int("imported", len(result.Imported)),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)

	c.Redirect(http.StatusSeeOther, adminPath)
}

// RegisterAdminRoutes registers the admin pages on rg, which should be mounted at /admin.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/new", h.NewForm)
	rg.POST("/new", h.Create)
	rg.GET("/edit/:id", h.EditForm)
	rg.POST("/edit/:id", h.Edit)
	rg.POST("/delete/:id", h.Delete)

	if h.importer != nil {
		rg.POST("/import", h.Import)
	}
}
