package handler

import (
	"html/template"
	"log/slog"
	"net/http"
)

// PageHandler serves the static informational pages.
type PageHandler struct {
	templates *template.Template
}

func NewPageHandler(tmpl *template.Template) *PageHandler {
	return &PageHandler{templates: tmpl}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	render(h.templates, w, "index.html", nil)
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	render(h.templates, w, "about.html", nil)
}

func render(tmpl *template.Template, w http.ResponseWriter, name string, data any) {
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template", "name", name, "err", err)
	}
}
