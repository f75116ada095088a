package repositories

import (
	"context"

	"paygate/internal/domain/payment"
)

// Notification is one stored gateway callback awaiting settlement.
type Notification struct {
	ID        int64
	Kind      string // "transaction" or "card"
	SessionID string
	OrderID   int64
	RawJSON   []byte
	Attempts  int
}

// PaymentRepository persists payment attempts.
type PaymentRepository interface {
	SavePending(ctx context.Context, p *payment.Payment) error
	FindBySessionID(ctx context.Context, sessionID string) (*payment.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*payment.Payment, error)
	// Update persists a state change made outside the notification
	// pipeline, such as a refund.
	Update(ctx context.Context, p *payment.Payment) error
}

// NotificationRepository persists inbound callbacks and drives the
// settlement queue.
type NotificationRepository interface {
	Save(ctx context.Context, kind, sessionID string, orderID int64, raw []byte) (int64, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*Notification, error)
	// Settle atomically applies the payment state change and marks the
	// notification processed.
	Settle(ctx context.Context, n *Notification, p *payment.Payment) error
	MarkFailed(ctx context.Context, id int64) error
}
