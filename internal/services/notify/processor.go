package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"paygate/internal/domain/payment"
	"paygate/internal/przelewy24"
	"paygate/internal/store/repositories"
)

// Notification kinds as stored by the webhook handlers.
const (
	KindTransaction = "transaction"
	KindCard        = "card"
)

const maxVerifyRetries = 4

// Verifier is the slice of the gateway client the processor needs.
type Verifier interface {
	VerifyTransaction(ctx context.Context, v przelewy24.Verification) (bool, error)
}

// Processor settles stored notifications: for transaction callbacks it
// confirms the transaction back at the gateway, for card callbacks the
// variant itself decides the outcome. Signatures were already verified at
// intake; the processor trusts the stored payload.
type Processor struct {
	verifier      Verifier
	payments      repositories.PaymentRepository
	notifications repositories.NotificationRepository
}

func NewProcessor(verifier Verifier, payments repositories.PaymentRepository, notifications repositories.NotificationRepository) *Processor {
	return &Processor{
		verifier:      verifier,
		payments:      payments,
		notifications: notifications,
	}
}

// Process settles a single notification. A returned error means the
// notification stays queued for another attempt.
func (p *Processor) Process(ctx context.Context, n *repositories.Notification) error {
	stored, err := p.payments.FindBySessionID(ctx, n.SessionID)
	if err != nil {
		return fmt.Errorf("load payment %s: %w", n.SessionID, err)
	}
	if stored == nil {
		log.Warn().
			Str("session_id", n.SessionID).
			Int64("notification_id", n.ID).
			Msg("notification for unknown session")
		return p.notifications.MarkFailed(ctx, n.ID)
	}
	if stored.IsSettled() {
		// Redelivery of an already settled attempt; just drain it.
		return p.notifications.Settle(ctx, n, stored)
	}

	switch n.Kind {
	case KindTransaction:
		return p.processTransaction(ctx, n, stored)
	case KindCard:
		return p.processCard(ctx, n, stored)
	default:
		log.Warn().Str("kind", n.Kind).Int64("notification_id", n.ID).Msg("unknown notification kind")
		return p.notifications.MarkFailed(ctx, n.ID)
	}
}

func (p *Processor) processTransaction(ctx context.Context, n *repositories.Notification, stored *payment.Payment) error {
	notif, err := przelewy24.ParseTransactionNotification(n.RawJSON)
	if err != nil {
		log.Error().Err(err).Int64("notification_id", n.ID).Msg("stored notification unparseable")
		return p.notifications.MarkFailed(ctx, n.ID)
	}

	if !stored.Matches(payment.Money(notif.Amount), payment.Currency(notif.Currency)) {
		log.Warn().
			Str("session_id", n.SessionID).
			Int("notified_amount", notif.Amount).
			Int64("expected_amount", int64(stored.Amount)).
			Msg("notification does not match stored payment")
		return p.notifications.MarkFailed(ctx, n.ID)
	}

	verified, err := p.verifyWithRetry(ctx, przelewy24.Verification{
		SessionID: notif.SessionID,
		OrderID:   notif.OrderID,
		Amount:    notif.Amount,
		Currency:  notif.Currency,
	})
	if err != nil {
		return fmt.Errorf("verify %s: %w", n.SessionID, err)
	}

	if verified {
		if err := stored.Confirm(int64(notif.OrderID), notif.MethodID); err != nil {
			return err
		}
	} else {
		if err := stored.Reject(); err != nil {
			return err
		}
	}
	return p.notifications.Settle(ctx, n, stored)
}

func (p *Processor) processCard(ctx context.Context, n *repositories.Notification, stored *payment.Payment) error {
	notif, err := przelewy24.ParseCardNotification(n.RawJSON)
	if err != nil {
		log.Error().Err(err).Int64("notification_id", n.ID).Msg("stored card notification unparseable")
		return p.notifications.MarkFailed(ctx, n.ID)
	}

	// Card callbacks are authoritative on their own: the variant is the
	// outcome, no verify round trip exists for them.
	if notif.Failure != nil {
		if err := stored.Reject(); err != nil {
			return err
		}
	} else {
		// Card callbacks carry no currency; the amount still has to match.
		if !stored.Matches(payment.Money(notif.Success.Amount), stored.Currency) {
			log.Warn().
				Str("session_id", n.SessionID).
				Int("notified_amount", notif.Success.Amount).
				Int64("expected_amount", int64(stored.Amount)).
				Msg("card notification does not match stored payment")
			return p.notifications.MarkFailed(ctx, n.ID)
		}
		if err := stored.Confirm(int64(notif.OrderID()), notif.Success.Method); err != nil {
			return err
		}
	}
	return p.notifications.Settle(ctx, n, stored)
}

// verifyWithRetry retries the verify exchange on transport failures.
// Gateway rejections (an error envelope) are permanent; retrying them
// cannot change the answer.
func (p *Processor) verifyWithRetry(ctx context.Context, v przelewy24.Verification) (bool, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxVerifyRetries), ctx)
	return backoff.RetryWithData(func() (bool, error) {
		ok, err := p.verifier.VerifyTransaction(ctx, v)
		if err != nil {
			var apiErr *przelewy24.Error
			if errors.As(err, &apiErr) && apiErr.HasGatewayCode() {
				return false, backoff.Permanent(err)
			}
			return false, err
		}
		return ok, nil
	}, policy)
}
