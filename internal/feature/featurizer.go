// Package feature turns raw transaction form fields into model input.
package feature

import (
	"strconv"
	"strings"

	"github.com/fraudwatch/internal/encoder"
	"github.com/fraudwatch/internal/model"
)

// Featurizer assembles the 7-column row the tabular classifier was
// trained on. Its encoders are loaded once at startup and never re-fit.
type Featurizer struct {
	account  *encoder.LabelEncoder
	receiver *encoder.LabelEncoder
	payment  *encoder.LabelEncoder
}

func New(account, receiver, payment *encoder.LabelEncoder) *Featurizer {
	return &Featurizer{account: account, receiver: receiver, payment: payment}
}

// Row parses and encodes the input into training column order:
// from_bank, sender account, to_bank, receiver account, amount received,
// amount paid, payment format.
func (f *Featurizer) Row(in model.TransactionInput) ([]float64, error) {
	fromBank, err := parseInt("from_bank", in.FromBank)
	if err != nil {
		return nil, err
	}
	toBank, err := parseInt("to_bank", in.ToBank)
	if err != nil {
		return nil, err
	}
	amountReceived, err := parseFloat("amount_received", in.AmountReceived)
	if err != nil {
		return nil, err
	}
	amountPaid, err := parseFloat("amount_paid", in.AmountPaid)
	if err != nil {
		return nil, err
	}

	sender, err := f.account.Transform(in.Account)
	if err != nil {
		return nil, err
	}
	receiver, err := f.receiver.Transform(in.ReceiverAccount)
	if err != nil {
		return nil, err
	}
	payment, err := f.payment.Transform(in.PaymentFormat)
	if err != nil {
		return nil, err
	}

	return []float64{
		float64(fromBank),
		float64(sender),
		float64(toBank),
		float64(receiver),
		amountReceived,
		amountPaid,
		float64(payment),
	}, nil
}

func parseInt(field, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &model.InputFormatError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &model.InputFormatError{Field: field, Reason: "must be a number"}
	}
	return n, nil
}
