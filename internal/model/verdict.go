package model

// Verdict is the two-state decision produced by a scorer.
type Verdict int

const (
	VerdictClean Verdict = iota
	VerdictSuspicious
)

func (v Verdict) String() string {
	if v == VerdictSuspicious {
		return "suspicious"
	}
	return "clean"
}

// InvoiceResult is the result-page text for an invoice verdict.
func (v Verdict) InvoiceResult() string {
	if v == VerdictSuspicious {
		return "🚩 Fraudulent Invoice Detected"
	}
	return "✅ Invoice is Authentic"
}

// InvoiceDetails is the notification text for an invoice verdict.
func (v Verdict) InvoiceDetails() string {
	if v == VerdictSuspicious {
		return "🚩 Our system detected a *fraudulent invoice*. Immediate action is recommended."
	}
	return "✅ Your uploaded invoice appears *authentic*. No suspicious activity was detected."
}

// TransactionResult is the result-page text for a transaction verdict.
func (v Verdict) TransactionResult() string {
	if v == VerdictSuspicious {
		return "⚠️ Possible Laundering Detected"
	}
	return "✅ Transaction Looks Legitimate"
}

// TransactionDetails is the notification text for a transaction verdict.
func (v Verdict) TransactionDetails() string {
	if v == VerdictSuspicious {
		return "⚠️ Our system detected *possible laundering* in your recent transaction. Please verify the transaction details."
	}
	return "✅ Your transaction appears *legitimate*. No suspicious patterns were detected."
}
