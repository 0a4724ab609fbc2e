package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-service/internal/app"
	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/mocks"
)

type adminFixture struct {
	engine *gin.Engine
	store  *mocks.MockQuoteStore
	source *mocks.MockQuoteSource
}

func newAdminFixture(t *testing.T, withImport bool) *adminFixture {
	t.Helper()

	svc, store := newQuoteService(t)
	source := mocks.NewMockQuoteSource(t)

	var importer *app.ImportService
	if withImport {
		importer = app.NewImportService(app.ImportServiceConfig{
			Source:   source,
			Store:    store,
			MaxBatch: 5,
			Logger:   discardLogger(),
		})
	}

	engine := newEngine()
	NewAdminHandler(svc, importer).RegisterAdminRoutes(engine.Group("/admin"))

	return &adminFixture{engine: engine, store: store, source: source}
}

func TestAdmin_List(t *testing.T) {
	f := newAdminFixture(t, true)

	f.store.EXPECT().ListAll(mock.Anything, domain.OrderNewestFirst).Return([]*domain.Quote{storedQuote}, nil).Once()
	f.store.EXPECT().Count(mock.Anything).Return(1, nil).Once()

	w := do(f.engine, http.MethodGet, "/admin", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Citas (1)")
	assert.Contains(t, w.Body.String(), "El conocimiento es poder.")
	assert.Contains(t, w.Body.String(), `action="/admin/import"`)
}

func TestAdmin_List_StoreFailure(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().ListAll(mock.Anything, mock.Anything).Return(nil, storeDown()).Maybe()
	f.store.EXPECT().Count(mock.Anything).Return(0, storeDown()).Maybe()

	w := do(f.engine, http.MethodGet, "/admin", "", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestAdmin_NewForm(t *testing.T) {
	f := newAdminFixture(t, false)

	w := do(f.engine, http.MethodGet, "/admin/new", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/admin/new"`)
}

func TestAdmin_Create(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"form post", "text=Carpe+diem.&author=Horacio", formContentType},
		{"json body", `{"text":"Carpe diem.","author":"Horacio"}`, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture(t, false)

			f.store.EXPECT().Insert(mock.Anything, domain.QuoteDraft{Text: "Carpe diem.", Author: "Horacio"}).
				Return(&domain.Quote{ID: "new", Text: "Carpe diem.", Author: "Horacio"}, nil).Once()

			w := do(f.engine, http.MethodPost, "/admin/new", tt.body, tt.contentType)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/admin", w.Header().Get("Location"))
		})
	}
}

func TestAdmin_Create_Invalid(t *testing.T) {
	f := newAdminFixture(t, false)

	w := do(f.engine, http.MethodPost, "/admin/new", "text=&author=Horacio", formContentType)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "No se pudo guardar la cita")
	assert.Contains(t, w.Body.String(), "text: this field is required")
	f.store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAdmin_Create_StoreFailure(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, storeDown()).Once()

	w := do(f.engine, http.MethodPost, "/admin/new", "text=A&author=B", formContentType)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Algo salió mal")
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestAdmin_EditForm(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().FindByID(mock.Anything, storedQuote.ID).Return(storedQuote, nil).Once()

	w := do(f.engine, http.MethodGet, "/admin/edit/"+storedQuote.ID, "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Francis Bacon"`)
	assert.Contains(t, w.Body.String(), `action="/admin/edit/`+storedQuote.ID+`"`)
}

func TestAdmin_EditForm_NotFound(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().FindByID(mock.Anything, "missing").
		Return(nil, domain.NewNotFoundError(domain.EntityQuote, "missing")).Once()

	w := do(f.engine, http.MethodGet, "/admin/edit/missing", "", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Cita no encontrada")
}

func TestAdmin_Edit(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().UpdateByID(mock.Anything, storedQuote.ID, domain.QuoteDraft{Text: "Nuevo", Author: "Autor"}).
		Return(&domain.Quote{ID: storedQuote.ID, Text: "Nuevo", Author: "Autor"}, nil).Once()

	w := do(f.engine, http.MethodPost, "/admin/edit/"+storedQuote.ID, "text=+Nuevo+&author=Autor", formContentType)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestAdmin_Edit_NotFound(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().UpdateByID(mock.Anything, "missing", mock.Anything).
		Return(nil, domain.NewNotFoundError(domain.EntityQuote, "missing")).Once()

	w := do(f.engine, http.MethodPost, "/admin/edit/missing", "text=A&author=B", formContentType)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_Delete(t *testing.T) {
	for _, existed := range []bool{true, false} {
		f := newAdminFixture(t, false)

		f.store.EXPECT().DeleteByID(mock.Anything, "q1").Return(existed, nil).Once()

		w := do(f.engine, http.MethodPost, "/admin/delete/q1", "", "")

		assert.Equal(t, http.StatusSeeOther, w.Code, "existed=%v", existed)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	}
}

func TestAdmin_Delete_StoreFailure(t *testing.T) {
	f := newAdminFixture(t, false)

	f.store.EXPECT().DeleteByID(mock.Anything, "q1").Return(false, storeDown()).Once()

	w := do(f.engine, http.MethodPost, "/admin/delete/q1", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdmin_Import(t *testing.T) {
	f := newAdminFixture(t, true)

	f.source.EXPECT().RandomQuote(mock.Anything).
		Return(domain.QuoteDraft{Text: "Carpe diem.", Author: "Horacio"}, nil).Once()
	f.store.EXPECT().ListAll(mock.Anything, mock.Anything).Return(nil, nil).Once()
	f.store.EXPECT().Insert(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, d domain.QuoteDraft) (*domain.Quote, error) {
			return &domain.Quote{ID: "imp", Text: d.Text, Author: d.Author}, nil
		}).Once()

	w := do(f.engine, http.MethodPost, "/admin/import", "count=1", formContentType)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAdmin_Import_OverMax(t *testing.T) {
	f := newAdminFixture(t, true)

	w := do(f.engine, http.MethodPost, "/admin/import", "count=6", formContentType)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "count: must be between 1 and 5")
}

func TestAdmin_Import_DisabledWithoutImporter(t *testing.T) {
	f := newAdminFixture(t, false)

	w := do(f.engine, http.MethodPost, "/admin/import", "count=1", formContentType)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
