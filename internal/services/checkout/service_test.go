package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain/payment"
	"paygate/internal/przelewy24"
)

type fakeGateway struct {
	gotOrder  przelewy24.Order
	tx        *przelewy24.Transaction
	err       error
	gotRefund przelewy24.RefundRequest
	refunds   []przelewy24.RefundResult
	refundErr error
}

func (g *fakeGateway) RegisterTransaction(_ context.Context, order przelewy24.Order) (*przelewy24.Transaction, error) {
	g.gotOrder = order
	return g.tx, g.err
}

func (g *fakeGateway) Refund(_ context.Context, req przelewy24.RefundRequest) ([]przelewy24.RefundResult, error) {
	g.gotRefund = req
	return g.refunds, g.refundErr
}

type fakePaymentRepo struct {
	saved   *payment.Payment
	saveErr error
	updated *payment.Payment
	byID    map[string]*payment.Payment
}

func (r *fakePaymentRepo) SavePending(_ context.Context, p *payment.Payment) error {
	r.saved = p
	return r.saveErr
}

func (r *fakePaymentRepo) FindBySessionID(_ context.Context, sessionID string) (*payment.Payment, error) {
	return r.byID[sessionID], nil
}

func (r *fakePaymentRepo) List(_ context.Context, _, _ int) ([]*payment.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *payment.Payment) error {
	r.updated = p
	return nil
}

func TestStartRegistersAndSavesPending(t *testing.T) {
	gw := &fakeGateway{tx: &przelewy24.Transaction{
		Token: "tok-123",
		Link:  "https://sandbox.przelewy24.pl/trnRequest/tok-123",
	}}
	repo := &fakePaymentRepo{}
	svc := New(gw, repo, "https://shop.example/return", "https://shop.example/webhooks/p24/status")

	res, err := svc.Start(context.Background(), Request{
		SessionID:   "sess-42",
		Amount:      2500,
		Currency:    "PLN",
		Description: "order 42",
		Email:       "payer@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "sess-42", res.SessionID)
	assert.Equal(t, "tok-123", res.Token)
	assert.Equal(t, "https://sandbox.przelewy24.pl/trnRequest/tok-123", res.Link)

	// The service fills in the callback URLs; the caller never sees them.
	assert.Equal(t, "https://shop.example/return", gw.gotOrder.URLReturn)
	assert.Equal(t, "https://shop.example/webhooks/p24/status", gw.gotOrder.URLStatus)
	assert.Equal(t, 2500, gw.gotOrder.Amount)

	require.NotNil(t, repo.saved)
	assert.Equal(t, payment.StatusPending, repo.saved.Status)
	assert.Equal(t, "tok-123", repo.saved.Token)
}

func TestStartValidation(t *testing.T) {
	svc := New(&fakeGateway{}, &fakePaymentRepo{}, "", "")

	cases := []Request{
		{Amount: 2500, Currency: "PLN", Email: "a@b.c"},                          // missing session
		{SessionID: "s", Currency: "PLN", Email: "a@b.c"},                        // missing amount
		{SessionID: "s", Amount: -1, Currency: "PLN", Email: "a@b.c"},            // negative amount
		{SessionID: "s", Amount: 2500, Email: "a@b.c"},                           // missing currency
		{SessionID: "s", Amount: 2500, Currency: "PLN"},                          // missing email
	}
	for _, req := range cases {
		_, err := svc.Start(context.Background(), req)
		assert.Error(t, err)
	}
}

func TestStartGatewayErrorPassedThrough(t *testing.T) {
	gwErr := &przelewy24.Error{Message: "Invalid amount", Code: 305}
	gw := &fakeGateway{err: gwErr}
	repo := &fakePaymentRepo{}
	svc := New(gw, repo, "", "")

	_, err := svc.Start(context.Background(), Request{
		SessionID: "sess-42", Amount: 1, Currency: "PLN", Email: "a@b.c",
	})
	require.Error(t, err)

	var apiErr *przelewy24.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 305, apiErr.Code)
	assert.Nil(t, repo.saved)
}

func TestStartSaveFailure(t *testing.T) {
	gw := &fakeGateway{tx: &przelewy24.Transaction{Token: "tok"}}
	repo := &fakePaymentRepo{saveErr: errors.New("db down")}
	svc := New(gw, repo, "", "")

	_, err := svc.Start(context.Background(), Request{
		SessionID: "sess-42", Amount: 2500, Currency: "PLN", Email: "a@b.c",
	})
	assert.ErrorContains(t, err, "save pending payment")
}

func confirmedPayment(t *testing.T, sessionID string, amount payment.Money, orderID int64) *payment.Payment {
	t.Helper()
	p, err := payment.New(sessionID, amount, payment.PLN, "tok")
	require.NoError(t, err)
	require.NoError(t, p.Confirm(orderID, 154))
	return p
}

func TestRefundMarksPaymentRefunded(t *testing.T) {
	stored := confirmedPayment(t, "sess-42", 2500, 300123)
	gw := &fakeGateway{refunds: []przelewy24.RefundResult{
		{OrderID: 300123, SessionID: "sess-42", Amount: 2500, Status: "success"},
	}}
	repo := &fakePaymentRepo{byID: map[string]*payment.Payment{"sess-42": stored}}
	svc := New(gw, repo, "", "")

	out, err := svc.Refund(context.Background(), RefundRequest{
		SessionID: "sess-42", RequestID: "req-1", RefundsUUID: "uuid-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "success", out.Status)
	assert.EqualValues(t, 2500, out.Amount)

	// Amount zero defaults to the full stored amount; the idempotency
	// handles pass through untouched.
	require.Len(t, gw.gotRefund.Refunds, 1)
	assert.Equal(t, 2500, gw.gotRefund.Refunds[0].Amount)
	assert.Equal(t, "req-1", gw.gotRefund.RequestID)
	assert.Equal(t, "uuid-1", gw.gotRefund.RefundsUUID)

	assert.Equal(t, payment.StatusRefunded, stored.Status)
	require.NotNil(t, repo.updated)
}

func TestRefundRefusedItemLeavesPaymentConfirmed(t *testing.T) {
	stored := confirmedPayment(t, "sess-42", 2500, 300123)
	gw := &fakeGateway{refunds: []przelewy24.RefundResult{
		{OrderID: 300123, SessionID: "sess-42", Amount: 2500, Status: "failed", Message: "Refund window closed"},
	}}
	repo := &fakePaymentRepo{byID: map[string]*payment.Payment{"sess-42": stored}}
	svc := New(gw, repo, "", "")

	out, err := svc.Refund(context.Background(), RefundRequest{SessionID: "sess-42"})
	require.NoError(t, err)

	assert.Equal(t, "failed", out.Status)
	assert.Equal(t, "Refund window closed", out.Message)
	assert.Equal(t, payment.StatusConfirmed, stored.Status)
	assert.Nil(t, repo.updated)
}

func TestRefundRequiresConfirmedPayment(t *testing.T) {
	pending, err := payment.New("sess-42", 2500, payment.PLN, "tok")
	require.NoError(t, err)
	repo := &fakePaymentRepo{byID: map[string]*payment.Payment{"sess-42": pending}}
	svc := New(&fakeGateway{}, repo, "", "")

	_, err = svc.Refund(context.Background(), RefundRequest{SessionID: "sess-42"})
	assert.ErrorContains(t, err, "only confirmed payments")

	_, err = svc.Refund(context.Background(), RefundRequest{SessionID: "sess-absent"})
	assert.ErrorContains(t, err, "unknown session")
}

func TestRefundAmountOutOfRange(t *testing.T) {
	stored := confirmedPayment(t, "sess-42", 2500, 300123)
	repo := &fakePaymentRepo{byID: map[string]*payment.Payment{"sess-42": stored}}
	svc := New(&fakeGateway{}, repo, "", "")

	_, err := svc.Refund(context.Background(), RefundRequest{SessionID: "sess-42", Amount: 9999})
	assert.ErrorContains(t, err, "out of range")
	assert.Equal(t, payment.StatusConfirmed, stored.Status)
}
