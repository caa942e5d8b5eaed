package handler

import (
	"context"
	"fmt"
	"html/template"
	"image"
	"log/slog"
	"net/http"

	"github.com/fraudwatch/internal/ela"
	"github.com/fraudwatch/internal/model"
	"github.com/fraudwatch/internal/upload"
)

const maxUploadBytes = 10 << 20

const badUploadMessage = "No valid image file uploaded. Only JPG, JPEG, and PNG are allowed."

type invoiceScorer interface {
	Score(ctx context.Context, ela image.Image) (model.Verdict, error)
}

type notifier interface {
	SendVerdict(to, details string) error
}

// InvoiceHandler renders the invoice upload form and scores submissions.
type InvoiceHandler struct {
	logger     *slog.Logger
	uploads    *upload.Store
	scorer     invoiceScorer
	notifier   notifier
	templates  *template.Template
	flash      *Flash
	elaQuality int
}

func NewInvoiceHandler(logger *slog.Logger, uploads *upload.Store, scorer invoiceScorer, n notifier, tmpl *template.Template, flash *Flash, elaQuality int) *InvoiceHandler {
	return &InvoiceHandler{
		logger:     logger,
		uploads:    uploads,
		scorer:     scorer,
		notifier:   n,
		templates:  tmpl,
		flash:      flash,
		elaQuality: elaQuality,
	}
}

// Form renders the upload form.
func (h *InvoiceHandler) Form(w http.ResponseWriter, r *http.Request) {
	render(h.templates, w, "invoice.html", map[string]any{"Flashes": h.flash.Take(w, r)})
}

// Submit runs the ELA pipeline over an uploaded invoice and renders the
// verdict.
func (h *InvoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.flash.Redirect(w, r, "/invoice", "Upload too large or malformed.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	email := r.FormValue("email")
	if email == "" {
		h.flash.Redirect(w, r, "/invoice", "Email is required.")
		return
	}

	file, header, err := r.FormFile("invoice")
	if err != nil {
		h.flash.Redirect(w, r, "/invoice", badUploadMessage)
		return
	}
	defer file.Close()

	if !upload.Allowed(header.Filename) {
		h.flash.Redirect(w, r, "/invoice", badUploadMessage)
		return
	}

	stored, err := h.uploads.Save(header.Filename, file)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	elaImg, err := ela.FromFile(h.uploads.Path(stored), h.elaQuality)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	verdict, err := h.scorer.Score(r.Context(), elaImg)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.notify(email, verdict.InvoiceDetails())

	render(h.templates, w, "invoice_result.html", map[string]any{
		"Result": verdict.InvoiceResult(),
		"Image":  stored,
	})
}

func (h *InvoiceHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("invoice analysis failed", "err", err)
	h.flash.Redirect(w, r, "/invoice", fmt.Sprintf("Invoice analysis failed: %v", err))
}

// notify emails the verdict. Delivery failures are logged and swallowed;
// the request still renders its result page.
func (h *InvoiceHandler) notify(email, details string) {
	if err := h.notifier.SendVerdict(email, details); err != nil {
		h.logger.Error("invoice: notification failed", "to", email, "err", err)
	}
}
