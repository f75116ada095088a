package przelewy24

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
)

// signPayload computes the lowercase hex SHA-384 digest of the canonical
// JSON form of v. Key order in the digest input is fixed by v's struct field
// declaration order, and HTML escaping is disabled so characters like '&'
// are hashed as the gateway hashes them. Deterministic, no side effects.
func signPayload(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// Only the fixed canonical structs below are ever passed in.
		panic("przelewy24: unmarshalable sign payload: " + err.Error())
	}
	sum := sha512.Sum384(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return hex.EncodeToString(sum[:])
}

// Canonical field set for transaction registration.
type registerSign struct {
	SessionID  string `json:"sessionId"`
	MerchantID int    `json:"merchantId"`
	Amount     int    `json:"amount"`
	Currency   string `json:"currency"`
	CRC        string `json:"crc"`
}

// Canonical field set for transaction verification.
type verifySign struct {
	SessionID string `json:"sessionId"`
	OrderID   int    `json:"orderId"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	CRC       string `json:"crc"`
}

// Canonical field set for an inbound transaction notification: every field
// of the notification except the signature itself, plus the CRC key.
type transactionNotificationSign struct {
	MerchantID   int    `json:"merchantId"`
	PosID        int    `json:"posId"`
	SessionID    string `json:"sessionId"`
	Amount       int    `json:"amount"`
	OriginAmount int    `json:"originAmount"`
	Currency     string `json:"currency"`
	OrderID      int    `json:"orderId"`
	MethodID     int    `json:"methodId"`
	Statement    string `json:"statement"`
	CRC          string `json:"crc"`
}

// Canonical field sets for the two card notification shapes. The algorithm
// is the same as for transaction notifications; only the field set differs.
type cardSuccessSign struct {
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
	CRC            string `json:"crc"`
}

type cardFailureSign struct {
	Amount       int    `json:"amount"`
	ThreeDS      bool   `json:"3ds"`
	Method       int    `json:"method"`
	OrderID      int    `json:"orderId"`
	SessionID    string `json:"sessionId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	CRC          string `json:"crc"`
}
