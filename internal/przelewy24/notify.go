package przelewy24

import "encoding/json"

// VerifyNotification recomputes the expected signature for an inbound
// transaction notification and compares it against the one the gateway
// supplied. Purely local, no network call. Must be run before trusting any
// payment-completion callback. A false result is a legitimate outcome, not
// an error.
func (c *Client) VerifyNotification(n TransactionNotification) bool {
	expected := signPayload(transactionNotificationSign{
		MerchantID:   n.MerchantID,
		PosID:        n.PosID,
		SessionID:    n.SessionID,
		Amount:       n.Amount,
		OriginAmount: n.OriginAmount,
		Currency:     n.Currency,
		OrderID:      n.OrderID,
		MethodID:     n.MethodID,
		Statement:    n.Statement,
		CRC:          c.crcKey,
	})
	return n.Sign == expected
}

// VerifyCardNotification verifies either card callback variant. Both are
// hashed the same way; the canonical field set is the variant's own fields
// minus the signature, plus the CRC key.
func (c *Client) VerifyCardNotification(n CardNotification) bool {
	switch {
	case n.Failure != nil:
		expected := signPayload(cardFailureSign{
			Amount:       n.Failure.Amount,
			ThreeDS:      n.Failure.ThreeDS,
			Method:       n.Failure.Method,
			OrderID:      n.Failure.OrderID,
			SessionID:    n.Failure.SessionID,
			ErrorCode:    n.Failure.ErrorCode,
			ErrorMessage: n.Failure.ErrorMessage,
			CRC:          c.crcKey,
		})
		return n.Failure.Sign == expected
	case n.Success != nil:
		expected := signPayload(cardSuccessSign{
			Amount:         n.Success.Amount,
			ThreeDS:        n.Success.ThreeDS,
			Method:         n.Success.Method,
			RefID:          n.Success.RefID,
			OrderID:        n.Success.OrderID,
			SessionID:      n.Success.SessionID,
			BIN:            n.Success.BIN,
			MaskedCCNumber: n.Success.MaskedCCNumber,
			CCExp:          n.Success.CCExp,
			Hash:           n.Success.Hash,
			CardCountry:    n.Success.CardCountry,
			Risk:           n.Success.Risk,
			LiabilityShift: n.Success.LiabilityShift,
			CRC:            c.crcKey,
		})
		return n.Success.Sign == expected
	}
	return false
}

// ParseTransactionNotification decodes a raw webhook body.
func ParseTransactionNotification(body []byte) (TransactionNotification, error) {
	var n TransactionNotification
	err := json.Unmarshal(body, &n)
	return n, err
}

// ParseCardNotification decodes a raw card webhook body into the correct
// variant. Payloads carrying an errorCode are the failure shape.
func ParseCardNotification(body []byte) (CardNotification, error) {
	var probe struct {
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return CardNotification{}, err
	}
	if probe.ErrorCode != "" {
		var f CardFailureNotification
		if err := json.Unmarshal(body, &f); err != nil {
			return CardNotification{}, err
		}
		return CardNotification{Failure: &f}, nil
	}
	var s CardSuccessNotification
	if err := json.Unmarshal(body, &s); err != nil {
		return CardNotification{}, err
	}
	return CardNotification{Success: &s}, nil
}
