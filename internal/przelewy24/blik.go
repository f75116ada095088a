package przelewy24

// RecurringParams configures a recurring BLIK payment. Type is "O"
// (one-time), "M" (monthly) or "A" (annual).
type RecurringParams struct {
	Type           string `json:"type"`
	ExpirationDate string `json:"expirationDate"`
	AvailableBanks bool   `json:"availableBanks"`
	InitDate       string `json:"initDate"`
}

// ChargeBlikByCodeParams charges a registered transaction with a BLIK code
// typed in by the customer. AliasValue/AliasLabel optionally register an
// alias for future charges.
type ChargeBlikByCodeParams struct {
	Token      string           `json:"token"`
	BlikCode   string           `json:"blikCode"`
	AliasValue string           `json:"aliasValue,omitempty"`
	AliasLabel string           `json:"aliasLabel,omitempty"`
	Recurring  *RecurringParams `json:"recurring,omitempty"`
}

// ChargeBlikByAliasParams charges a registered transaction via a previously
// stored BLIK alias. Type must be "alias".
type ChargeBlikByAliasParams struct {
	Token      string           `json:"token"`
	Type       string           `json:"type"`
	AliasValue string           `json:"aliasValue"`
	AliasLabel string           `json:"aliasLabel,omitempty"`
	Recurring  *RecurringParams `json:"recurring,omitempty"`
}

// ChargeBlikResult is the immediate response to a BLIK charge; the final
// outcome arrives as a BlikPaymentNotification.
type ChargeBlikResult struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// BlikAlias is one stored BLIK alias for a customer.
type BlikAlias struct {
	Value          string `json:"value"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expirationDate"`
}

// BlikPaymentNotification reports the outcome of a BLIK charge. The
// protocol defines no signature for it; authenticity rests on transport
// auth and the IP allow-list only.
type BlikPaymentNotification struct {
	OrderID   string            `json:"orderId"`
	SessionID string            `json:"sessionId"`
	Method    int               `json:"method"`
	Result    BlikPaymentResult `json:"result"`
}

type BlikPaymentResult struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status"`
	TrxRef  string `json:"trxRef"`
}

// AliasUpdateNotification reports a BLIK alias status change
// (REGISTERED, UNREGISTERED or EXPIRED). Unsigned, like the payment
// notification above.
type AliasUpdateNotification struct {
	Value  string `json:"value"`
	Email  string `json:"email"`
	Type   string `json:"type"`
	Status string `json:"status"`
}
