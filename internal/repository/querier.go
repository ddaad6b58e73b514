package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so every
// repository can run against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repos bundles the transaction-scoped repositories handed to a closure.
type Repos struct {
	Tickets   TicketRepository
	Approvals ApprovalRepository
	Profiles  ProfileRepository
}

// TxManager runs a closure inside a single database transaction. Lifecycle
// mutations do their read-then-write through it so concurrent calls can never
// double-advance a sequence cursor.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a pgx-backed transaction manager.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

func (m *pgxTxManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return pgx.BeginTxFunc(ctx, m.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, Repos{
			Tickets:   NewTicketRepository(tx),
			Approvals: NewApprovalRepository(tx),
			Profiles:  NewProfileRepository(tx),
		})
	})
}
