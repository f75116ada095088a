package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"paygate/internal/domain/payment"
	"paygate/internal/przelewy24"
	"paygate/internal/store/repositories"
)

// Gateway is the slice of the Przelewy24 client checkout needs.
type Gateway interface {
	RegisterTransaction(ctx context.Context, order przelewy24.Order) (*przelewy24.Transaction, error)
	Refund(ctx context.Context, req przelewy24.RefundRequest) ([]przelewy24.RefundResult, error)
}

// Service registers transactions at the gateway and tracks them as pending
// payments.
type Service struct {
	gateway   Gateway
	payments  repositories.PaymentRepository
	urlReturn string
	urlStatus string
}

func New(gateway Gateway, payments repositories.PaymentRepository, urlReturn, urlStatus string) *Service {
	return &Service{
		gateway:   gateway,
		payments:  payments,
		urlReturn: urlReturn,
		urlStatus: urlStatus,
	}
}

// Request describes one checkout attempt.
type Request struct {
	SessionID   string `json:"sessionId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Method      int    `json:"method,omitempty"`
}

// Result is returned to the caller; the payer must be redirected to Link.
type Result struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Link      string `json:"link"`
}

// Start validates input, registers the transaction and stores the pending
// payment. Input checks are hygiene only; gateway business rules (amount
// bounds, session collisions) are left to the gateway and surfaced as-is.
func (s *Service) Start(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.Currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	tx, err := s.gateway.RegisterTransaction(ctx, przelewy24.Order{
		SessionID:   req.SessionID,
		Amount:      int(req.Amount),
		Currency:    req.Currency,
		Description: req.Description,
		Email:       req.Email,
		Method:      req.Method,
		URLReturn:   s.urlReturn,
		URLStatus:   s.urlStatus,
	})
	if err != nil {
		return nil, err
	}

	p, err := payment.New(req.SessionID, payment.Money(req.Amount), payment.Currency(req.Currency), tx.Token)
	if err != nil {
		return nil, err
	}
	if err := s.payments.SavePending(ctx, p); err != nil {
		return nil, fmt.Errorf("save pending payment: %w", err)
	}

	log.Info().
		Str("session_id", req.SessionID).
		Int64("amount", req.Amount).
		Str("currency", req.Currency).
		Msg("transaction registered")

	return &Result{SessionID: req.SessionID, Token: tx.Token, Link: tx.Link}, nil
}

// RefundRequest asks for a refund of one confirmed payment. Amount zero
// means the full stored amount. RequestID and RefundsUUID are the caller's
// idempotency handles, passed to the gateway untouched.
type RefundRequest struct {
	SessionID   string `json:"sessionId"`
	Amount      int64  `json:"amount,omitempty"`
	RequestID   string `json:"requestId"`
	RefundsUUID string `json:"refundsUuid"`
}

// RefundOutcome is the gateway's answer for the single refund item.
type RefundOutcome struct {
	SessionID string `json:"sessionId"`
	OrderID   int64  `json:"orderId"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

const refundStatusSuccess = "success"

// Refund submits a refund for a confirmed payment and, when the gateway
// accepts it, marks the stored payment refunded. A refused item is not an
// error; its status and message are surfaced as-is.
func (s *Service) Refund(ctx context.Context, req RefundRequest) (*RefundOutcome, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}

	stored, err := s.payments.FindBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load payment %s: %w", req.SessionID, err)
	}
	if stored == nil {
		return nil, fmt.Errorf("unknown session %s", req.SessionID)
	}
	if stored.Status != payment.StatusConfirmed {
		return nil, fmt.Errorf("payment %s is %s, only confirmed payments can be refunded", req.SessionID, stored.Status)
	}

	amount := req.Amount
	if amount == 0 {
		amount = int64(stored.Amount)
	}
	if amount < 0 || amount > int64(stored.Amount) {
		return nil, fmt.Errorf("refund amount %d out of range for payment of %d", amount, stored.Amount)
	}

	results, err := s.gateway.Refund(ctx, przelewy24.RefundRequest{
		RequestID:   req.RequestID,
		RefundsUUID: req.RefundsUUID,
		Refunds: []przelewy24.RefundItem{{
			OrderID:   int(stored.OrderID),
			SessionID: stored.SessionID,
			Amount:    int(amount),
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("gateway returned no refund outcome for %s", req.SessionID)
	}

	item := results[0]
	if item.Status == refundStatusSuccess {
		if err := stored.MarkRefunded(); err != nil {
			return nil, err
		}
		if err := s.payments.Update(ctx, stored); err != nil {
			return nil, fmt.Errorf("persist refunded payment: %w", err)
		}
	}

	log.Info().
		Str("session_id", req.SessionID).
		Int64("amount", amount).
		Str("status", item.Status).
		Msg("refund submitted")

	return &RefundOutcome{
		SessionID: req.SessionID,
		OrderID:   int64(item.OrderID),
		Amount:    int64(item.Amount),
		Status:    item.Status,
		Message:   item.Message,
	}, nil
}
