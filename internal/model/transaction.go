package model

// TransactionInput holds the raw form fields of a transaction check, in
// the order the tabular model was trained on.
type TransactionInput struct {
	FromBank        string
	Account         string
	ToBank          string
	ReceiverAccount string
	AmountReceived  string
	AmountPaid      string
	PaymentFormat   string
}
