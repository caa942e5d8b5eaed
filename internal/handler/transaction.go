package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/fraudwatch/internal/classifier"
	"github.com/fraudwatch/internal/feature"
	"github.com/fraudwatch/internal/model"
)

// TransactionHandler renders the transaction form and scores submissions.
type TransactionHandler struct {
	logger     *slog.Logger
	featurizer *feature.Featurizer
	scorer     classifier.TransactionScorer
	notifier   notifier
	templates  *template.Template
	flash      *Flash
}

func NewTransactionHandler(logger *slog.Logger, f *feature.Featurizer, scorer classifier.TransactionScorer, n notifier, tmpl *template.Template, flash *Flash) *TransactionHandler {
	return &TransactionHandler{
		logger:     logger,
		featurizer: f,
		scorer:     scorer,
		notifier:   n,
		templates:  tmpl,
		flash:      flash,
	}
}

// Form renders the transaction form.
func (h *TransactionHandler) Form(w http.ResponseWriter, r *http.Request) {
	render(h.templates, w, "transaction.html", map[string]any{"Flashes": h.flash.Take(w, r)})
}

// Submit featurizes the submitted record, scores it and renders the
// verdict.
func (h *TransactionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flash.Redirect(w, r, "/transaction", "Malformed form submission.")
		return
	}

	email := r.FormValue("email")
	if email == "" {
		h.flash.Redirect(w, r, "/transaction", "Email is required.")
		return
	}

	in := model.TransactionInput{
		FromBank:        r.FormValue("from_bank"),
		Account:         r.FormValue("account"),
		ToBank:          r.FormValue("to_bank"),
		ReceiverAccount: r.FormValue("receiver_account"),
		AmountReceived:  r.FormValue("amount_received"),
		AmountPaid:      r.FormValue("amount_paid"),
		PaymentFormat:   r.FormValue("payment_format"),
	}

	row, err := h.featurizer.Row(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	verdict, err := h.scorer.Score(r.Context(), row)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.notify(email, verdict.TransactionDetails())

	render(h.templates, w, "transaction_result.html", map[string]any{
		"Result": verdict.TransactionResult(),
	})
}

func (h *TransactionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("transaction check failed", "err", err)
	h.flash.Redirect(w, r, "/transaction", fmt.Sprintf("Transaction check failed: %v", err))
}

// notify emails the verdict. Delivery failures are logged and swallowed.
func (h *TransactionHandler) notify(email, details string) {
	if err := h.notifier.SendVerdict(email, details); err != nil {
		h.logger.Error("transaction: notification failed", "to", email, "err", err)
	}
}
