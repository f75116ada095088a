package przelewy24

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return New(Config{
		MerchantID: 1001,
		APIKey:     "api-key",
		CRCKey:     "secretcrc",
		Sandbox:    true,
	})
}

func validTxnNotification() TransactionNotification {
	return TransactionNotification{
		MerchantID:   1001,
		PosID:        1001,
		SessionID:    "sess-1",
		Amount:       2500,
		OriginAmount: 2500,
		Currency:     "PLN",
		OrderID:      3001,
		MethodID:     154,
		Statement:    "p24-sess-1",
		Sign:         goldenTxnNotifSign,
	}
}

func TestVerifyNotification(t *testing.T) {
	c := testClient()
	assert.True(t, c.VerifyNotification(validTxnNotification()))
}

func TestVerifyNotificationRejectsMutation(t *testing.T) {
	c := testClient()

	n := validTxnNotification()
	n.Amount = 9999
	assert.False(t, c.VerifyNotification(n))

	n = validTxnNotification()
	n.SessionID = "sess-2"
	assert.False(t, c.VerifyNotification(n))

	n = validTxnNotification()
	n.OrderID = 3002
	assert.False(t, c.VerifyNotification(n))

	n = validTxnNotification()
	n.Statement = "tampered"
	assert.False(t, c.VerifyNotification(n))

	n = validTxnNotification()
	n.Sign = ""
	assert.False(t, c.VerifyNotification(n))
}

func TestVerifyNotificationSignIsCaseSensitive(t *testing.T) {
	c := testClient()
	n := validTxnNotification()
	n.Sign = "0D" + n.Sign[2:]
	assert.False(t, c.VerifyNotification(n))
}

func TestVerifyCardNotificationSuccess(t *testing.T) {
	c := testClient()
	n := CardNotification{Success: &CardSuccessNotification{
		Amount:         2500,
		ThreeDS:        true,
		Method:         241,
		RefID:          "ref-1",
		OrderID:        3001,
		SessionID:      "sess-1",
		BIN:            411111,
		MaskedCCNumber: "4111...1111",
		CCExp:          "1227",
		Hash:           "cardhash",
		CardCountry:    "PL",
		Risk:           10,
		LiabilityShift: true,
		Sign:           goldenCardSuccess,
	}}
	assert.True(t, c.VerifyCardNotification(n))

	n.Success.Risk = 95
	assert.False(t, c.VerifyCardNotification(n))
}

func TestVerifyCardNotificationFailure(t *testing.T) {
	c := testClient()
	n := CardNotification{Failure: &CardFailureNotification{
		Amount:       2500,
		ThreeDS:      false,
		Method:       241,
		OrderID:      3001,
		SessionID:    "sess-1",
		ErrorCode:    "05",
		ErrorMessage: "Do not honour",
		Sign:         goldenCardFailure,
	}}
	assert.True(t, c.VerifyCardNotification(n))

	n.Failure.ErrorCode = "06"
	assert.False(t, c.VerifyCardNotification(n))
}

func TestVerifyCardNotificationEmptyVariant(t *testing.T) {
	assert.False(t, testClient().VerifyCardNotification(CardNotification{}))
}

func TestParseCardNotificationDiscriminatesByErrorCode(t *testing.T) {
	failed, err := ParseCardNotification([]byte(`{"amount":2500,"3ds":false,"method":241,"orderId":3001,"sessionId":"sess-1","errorCode":"05","errorMessage":"Do not honour","sign":"x"}`))
	require.NoError(t, err)
	require.NotNil(t, failed.Failure)
	assert.Nil(t, failed.Success)
	assert.Equal(t, "05", failed.Failure.ErrorCode)
	assert.Equal(t, "sess-1", failed.SessionID())
	assert.Equal(t, 3001, failed.OrderID())

	ok, err := ParseCardNotification([]byte(`{"amount":2500,"3ds":true,"method":241,"refId":"ref-1","orderId":3001,"sessionId":"sess-1","bin":411111,"maskedCCNumber":"4111...1111","ccExp":"1227","hash":"cardhash","cardCountry":"PL","risk":10,"liabilityshift":true,"sign":"y"}`))
	require.NoError(t, err)
	require.NotNil(t, ok.Success)
	assert.Nil(t, ok.Failure)
	assert.Equal(t, "ref-1", ok.Success.RefID)
}

func TestParseTransactionNotification(t *testing.T) {
	n, err := ParseTransactionNotification([]byte(`{"merchantId":1001,"posId":1001,"sessionId":"sess-1","amount":2500,"originAmount":2500,"currency":"PLN","orderId":3001,"methodId":154,"statement":"p24-sess-1","sign":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "sess-1", n.SessionID)
	assert.Equal(t, 3001, n.OrderID)
	assert.Equal(t, "abc", n.Sign)
}
