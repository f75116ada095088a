package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"paygate/internal/domain/payment"
	"paygate/internal/store/repositories"
)

// Save stores a raw verified callback and enqueues it for settlement.
func (r *Repo) Save(ctx context.Context, kind, sessionID string, orderID int64, raw []byte) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (kind, session_id, order_id, raw_json)
		VALUES ($1,$2,$3,$4)
		RETURNING id`, kind, sessionID, orderID, raw).Scan(&id)
	return id, err
}

func (r *Repo) FindUnprocessed(ctx context.Context, limit int) ([]*repositories.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, session_id, order_id, raw_json, attempts
		  FROM notifications
		 WHERE processed_at IS NULL AND failed_at IS NULL
		 ORDER BY id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*repositories.Notification
	for rows.Next() {
		var n repositories.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.SessionID, &n.OrderID, &n.RawJSON, &n.Attempts); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// Settle applies the payment state change and marks the notification
// processed in one transaction.
func (r *Repo) Settle(ctx context.Context, n *repositories.Notification, p *payment.Payment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := updatePayment(ctx, tx, p); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE notifications
		   SET processed_at = now(), attempts = attempts + 1
		 WHERE id=$1`, n.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) MarkFailed(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		   SET failed_at = now(), attempts = attempts + 1
		 WHERE id=$1`, id)
	return err
}
