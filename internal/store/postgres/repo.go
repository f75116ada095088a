package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the repositories interfaces on top of pgx.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}
