// Package views holds the server-rendered HTML pages.
package views

import (
	"embed"
	"html/template"
	"time"
)

// Page names as registered with gin's HTML renderer.
const (
	PageIndex     = "index.html"
	PageAdminList = "admin_list.html"
	PageAdminForm = "admin_form.html"
	PageError     = "error.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}

		return t.UTC().Format("2006-01-02 15:04")
	},
}

// Templates parses every page. It panics on a malformed template, which the
// package tests catch.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

// QuoteView is the display form of a quote.
type QuoteView struct {
	ID        string
	Text      string
	Author    string
	CreatedAt time.Time
}

// IndexPage is the data for PageIndex.
type IndexPage struct {
	Quote QuoteView
}

// AdminListPage is the data for PageAdminList.
type AdminListPage struct {
	Quotes []QuoteView
	Total  int

	// ImportMax enables the import form when positive.
	ImportMax int
}

// AdminFormPage is the data for PageAdminForm. An empty ID renders the create form.
type AdminFormPage struct {
	ID     string
	Action string
	Text   string
	Author string
}

// ErrorPage is the data for PageError.
type ErrorPage struct {
	Status  int
	Title   string
	Message string
	Details []string
	TraceID string
}
