package przelewy24

// ChargeCard3DSResult is returned by card charges that require 3D Secure;
// the payer must be redirected to RedirectURL to authenticate.
type ChargeCard3DSResult struct {
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
}

// ChargeCardResult is returned by card charges without 3DS.
type ChargeCardResult struct {
	OrderID string `json:"orderId"`
}

// ChargeCardDirectParams carries raw card data for a direct charge.
type ChargeCardDirectParams struct {
	TransactionToken string `json:"transactionToken"`
	CardNumber       string `json:"cardNumber"`
	CardDate         string `json:"cardDate"`
	CVV              string `json:"cvv"`
	ClientName       string `json:"clientName"`
}

// CardInfo describes a stored card reference.
type CardInfo struct {
	RefID    string `json:"refId"`
	BIN      int    `json:"bin"`
	Mask     string `json:"mask"`
	CardType string `json:"cardType"`
	CardDate string `json:"cardDate"`
	Hash     string `json:"hash"`
}

// CardSuccessNotification is the callback the gateway sends after a
// successful card payment.
type CardSuccessNotification struct {
	Amount         int    `json:"amount"`
	ThreeDS        bool   `json:"3ds"`
	Method         int    `json:"method"`
	RefID          string `json:"refId"`
	OrderID        int    `json:"orderId"`
	SessionID      string `json:"sessionId"`
	BIN            int    `json:"bin"`
	MaskedCCNumber string `json:"maskedCCNumber"`
	CCExp          string `json:"ccExp"`
	Hash           string `json:"hash"`
	CardCountry    string `json:"cardCountry"`
	Risk           int    `json:"risk"`
	LiabilityShift bool   `json:"liabilityshift"`
	Sign           string `json:"sign"`
}

// CardFailureNotification is the callback sent after a declined card
// payment.
type CardFailureNotification struct {
	Amount       int    `json:"amount"`
	ThreeDS      bool   `json:"3ds"`
	Method       int    `json:"method"`
	OrderID      int    `json:"orderId"`
	SessionID    string `json:"sessionId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Sign         string `json:"sign"`
}

// CardNotification is the tagged union of the two card callback shapes.
// Exactly one of Success or Failure is set; the wire payloads are
// discriminated by the presence of an errorCode field.
type CardNotification struct {
	Success *CardSuccessNotification
	Failure *CardFailureNotification
}

// SessionID returns the session identifier regardless of variant.
func (n CardNotification) SessionID() string {
	if n.Failure != nil {
		return n.Failure.SessionID
	}
	if n.Success != nil {
		return n.Success.SessionID
	}
	return ""
}

// OrderID returns the gateway order identifier regardless of variant.
func (n CardNotification) OrderID() int {
	if n.Failure != nil {
		return n.Failure.OrderID
	}
	if n.Success != nil {
		return n.Success.OrderID
	}
	return 0
}
