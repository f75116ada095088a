package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping fail")
	}
	if err := ensureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("db schema init fail")
	}
	return pool
}

const schema = `
CREATE TABLE IF NOT EXISTS payments (
	id          BIGSERIAL PRIMARY KEY,
	session_id  TEXT NOT NULL UNIQUE,
	order_id    BIGINT,
	amount      BIGINT NOT NULL,
	currency    TEXT NOT NULL,
	status      TEXT NOT NULL,
	method_id   INT,
	token       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS notifications (
	id           BIGSERIAL PRIMARY KEY,
	kind         TEXT NOT NULL,
	session_id   TEXT NOT NULL,
	order_id     BIGINT NOT NULL DEFAULT 0,
	raw_json     JSONB NOT NULL,
	attempts     INT NOT NULL DEFAULT 0,
	processed_at TIMESTAMPTZ,
	failed_at    TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS notifications_queue_idx
	ON notifications (id) WHERE processed_at IS NULL AND failed_at IS NULL;
`

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
