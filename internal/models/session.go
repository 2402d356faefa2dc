package models

const PaymentStatusPaid = "paid"

// LineItem is one priced entry of a hosted session. UnitAmount is in minor
// currency units.
type LineItem struct {
	Currency    string
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type SessionRequest struct {
	LineItems         []LineItem
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	Metadata          map[string]string

	// Timestamp is the epoch millisecond stamp embedded in the redirect URLs
	// and metadata. It is not sent to the processor on its own.
	Timestamp int64
}

type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	CustomerID    string
	Metadata      map[string]string
}
