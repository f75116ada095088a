package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	p, err := New("sess-1", 2500, PLN, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.False(t, p.IsSettled())
}

func TestNewPaymentValidation(t *testing.T) {
	_, err := New("", 2500, PLN, "tok")
	assert.Error(t, err)

	_, err = New("sess-1", 0, PLN, "tok")
	assert.Error(t, err)

	_, err = New("sess-1", 2500, "", "tok")
	assert.Error(t, err)
}

func TestConfirmAndReject(t *testing.T) {
	p, err := New("sess-1", 2500, PLN, "tok")
	require.NoError(t, err)

	require.NoError(t, p.Confirm(3001, 154))
	assert.Equal(t, StatusConfirmed, p.Status)
	assert.EqualValues(t, 3001, p.OrderID)
	assert.True(t, p.IsSettled())

	// Already settled: no further transitions except refund.
	assert.Error(t, p.Confirm(3002, 154))
	assert.Error(t, p.Reject())

	require.NoError(t, p.MarkRefunded())
	assert.Equal(t, StatusRefunded, p.Status)
	assert.Error(t, p.MarkRefunded())
}

func TestRejectOnlyFromPending(t *testing.T) {
	p, err := New("sess-1", 2500, PLN, "tok")
	require.NoError(t, err)
	require.NoError(t, p.Reject())
	assert.Equal(t, StatusRejected, p.Status)
	assert.Error(t, p.MarkRefunded())
}

func TestMatches(t *testing.T) {
	p, err := New("sess-1", 2500, PLN, "tok")
	require.NoError(t, err)
	assert.True(t, p.Matches(2500, PLN))
	assert.False(t, p.Matches(2400, PLN))
	assert.False(t, p.Matches(2500, EUR))
}
