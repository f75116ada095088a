package przelewy24

// RefundItem instructs the gateway to refund part or all of one order.
type RefundItem struct {
	OrderID     int    `json:"orderId"`
	SessionID   string `json:"sessionId"`
	Amount      int    `json:"amount"`
	Description string `json:"description,omitempty"`
}

// RefundRequest groups refund items under caller-supplied idempotency
// handles. Refund requests carry no signature.
type RefundRequest struct {
	RequestID   string       `json:"requestId"`
	Refunds     []RefundItem `json:"refunds"`
	RefundsUUID string       `json:"refundsUuid"`
	URLStatus   string       `json:"urlStatus,omitempty"`
}

// RefundResult is the per-item outcome of a refund request. A batch can
// partially succeed; each item carries its own status.
type RefundResult struct {
	OrderID     int    `json:"orderId"`
	SessionID   string `json:"sessionId"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// RefundEntry is one historical refund attached to a transaction.
type RefundEntry struct {
	BatchID     int    `json:"batchId"`
	RequestID   string `json:"requestId"`
	Date        string `json:"date"`
	Login       string `json:"login"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Amount      int    `json:"amount"`
}

// TransactionWithRefunds is a transaction together with its refund history.
type TransactionWithRefunds struct {
	OrderID   int           `json:"orderId"`
	SessionID string        `json:"sessionId"`
	Amount    int           `json:"amount"`
	Currency  string        `json:"currency"`
	Refunds   []RefundEntry `json:"refunds"`
}
