package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"paygate/internal/domain/payment"
)

// SavePending inserts a pending payment keyed by session id. Re-registering
// the same session before the payer completes refreshes the amount/token.
func (r *Repo) SavePending(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (session_id, amount, currency, status, token)
		VALUES ($1,$2,$3,'pending',$4)
		ON CONFLICT (session_id) DO UPDATE
		  SET amount     = EXCLUDED.amount,
		      currency   = EXCLUDED.currency,
		      token      = EXCLUDED.token,
		      updated_at = now()
		  WHERE payments.status = 'pending'
	`, p.SessionID, int64(p.Amount), string(p.Currency), p.Token)
	return err
}

func (r *Repo) FindBySessionID(ctx context.Context, sessionID string) (*payment.Payment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, session_id, COALESCE(order_id, 0), amount, currency, status,
		       COALESCE(method_id, 0), token, created_at, updated_at
		  FROM payments
		 WHERE session_id=$1`, sessionID)
	return scanPayment(row)
}

func (r *Repo) List(ctx context.Context, limit, offset int) ([]*payment.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, COALESCE(order_id, 0), amount, currency, status,
		       COALESCE(method_id, 0), token, created_at, updated_at
		  FROM payments
		 ORDER BY id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persists a state change made outside the notification pipeline,
// such as a refund.
func (r *Repo) Update(ctx context.Context, p *payment.Payment) error {
	return updatePayment(ctx, r.db, p)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// updatePayment applies a settled payment; inside the notification
// transaction it pairs with the notification update for atomicity.
func updatePayment(ctx context.Context, db execer, p *payment.Payment) error {
	tag, err := db.Exec(ctx, `
		UPDATE payments
		   SET order_id   = NULLIF($2, 0),
		       method_id  = NULLIF($3, 0),
		       status     = $4,
		       updated_at = now()
		 WHERE session_id=$1`,
		p.SessionID, p.OrderID, p.MethodID, string(p.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", p.SessionID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var p payment.Payment
	var amount int64
	var currency, status string
	err := row.Scan(&p.ID, &p.SessionID, &p.OrderID, &amount, &currency, &status,
		&p.MethodID, &p.Token, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Amount = payment.Money(amount)
	p.Currency = payment.Currency(currency)
	p.Status = payment.Status(status)
	return &p, nil
}
