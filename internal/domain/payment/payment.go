package payment

import (
	"fmt"
	"strings"
	"time"
)

// Payment tracks one payment attempt against the gateway. SessionID is the
// merchant-chosen identifier; OrderID is assigned by the gateway once the
// payer completes the flow.
type Payment struct {
	ID        int64
	SessionID string
	OrderID   int64
	Amount    Money
	Currency  Currency
	Status    Status
	MethodID  int
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Money is a monetary amount in the smallest currency unit (grosz for PLN).
type Money int64

// Currency is an ISO 4217 currency code.
type Currency string

const (
	PLN Currency = "PLN"
	EUR Currency = "EUR"
)

// Status is the lifecycle state of a payment attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusRefunded  Status = "refunded"
)

// New creates a pending payment for a freshly registered transaction.
func New(sessionID string, amount Money, currency Currency, token string) (*Payment, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, DomainError{Code: ErrInvalidSession, Message: "session id is required"}
	}
	if amount <= 0 {
		return nil, DomainError{Code: ErrInvalidAmount, Message: fmt.Sprintf("amount must be positive: %d", amount)}
	}
	if currency == "" {
		return nil, DomainError{Code: ErrInvalidCurrency, Message: "currency is required"}
	}
	return &Payment{
		SessionID: sessionID,
		Amount:    amount,
		Currency:  currency,
		Status:    StatusPending,
		Token:     token,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// Confirm settles the payment after a verified notification and a positive
// gateway verification. Only pending payments can be confirmed.
func (p *Payment) Confirm(orderID int64, methodID int) error {
	if p.Status != StatusPending {
		return DomainError{Code: ErrInvalidTransition, Message: fmt.Sprintf("payment %s cannot be confirmed in status %s", p.SessionID, p.Status)}
	}
	p.OrderID = orderID
	p.MethodID = methodID
	p.Status = StatusConfirmed
	p.UpdatedAt = time.Now()
	return nil
}

// Reject marks the attempt as failed at the gateway.
func (p *Payment) Reject() error {
	if p.Status != StatusPending {
		return DomainError{Code: ErrInvalidTransition, Message: fmt.Sprintf("payment %s cannot be rejected in status %s", p.SessionID, p.Status)}
	}
	p.Status = StatusRejected
	p.UpdatedAt = time.Now()
	return nil
}

// MarkRefunded records that the gateway accepted a refund for this payment.
func (p *Payment) MarkRefunded() error {
	if p.Status != StatusConfirmed {
		return DomainError{Code: ErrInvalidTransition, Message: fmt.Sprintf("payment %s cannot be refunded in status %s", p.SessionID, p.Status)}
	}
	p.Status = StatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}

// IsSettled reports whether the payment reached a terminal state.
func (p *Payment) IsSettled() bool {
	return p.Status != StatusPending
}

// Matches checks an inbound notification's amount and currency against the
// stored attempt.
func (p *Payment) Matches(amount Money, currency Currency) bool {
	return p.Amount == amount && p.Currency == currency
}

// DomainError is a business-rule violation.
type DomainError struct {
	Message string
	Code    string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("payment [%s]: %s", e.Code, e.Message)
}

const (
	ErrInvalidSession    = "INVALID_SESSION"
	ErrInvalidAmount     = "INVALID_AMOUNT"
	ErrInvalidCurrency   = "INVALID_CURRENCY"
	ErrInvalidTransition = "INVALID_TRANSITION"
)
