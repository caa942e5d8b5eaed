package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fraudwatch/internal/handler"
	"github.com/fraudwatch/internal/web"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Static assets from the embedded FS; uploads from disk so result
	// pages can display stored invoices.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.uploads.Dir()))))

	r.Get("/api/health", handler.Health(app.inference))

	flash := handler.NewFlash(app.config.SessionSecret)

	pages := handler.NewPageHandler(web.Templates)
	r.Get("/", pages.Home)
	r.Get("/about", pages.About)

	invoice := handler.NewInvoiceHandler(app.logger, app.uploads, app.imageScorer, app.mailer, web.Templates, flash, app.config.ELAQuality)
	r.Get("/invoice", invoice.Form)
	r.Post("/invoice", invoice.Submit)

	tx := handler.NewTransactionHandler(app.logger, app.featurizer, app.tabular, app.mailer, web.Templates, flash)
	r.Get("/transaction", tx.Form)
	r.Post("/transaction", tx.Submit)

	return r
}
