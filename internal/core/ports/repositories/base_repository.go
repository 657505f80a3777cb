package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. It is a no-op on a finished transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxHook runs inside a posting transaction after the entry and its lines are
// written but before commit. A non-nil error aborts the whole transaction.
type TxHook func(ctx context.Context, tx pgx.Tx, entryID int64) error
