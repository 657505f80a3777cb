package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// IdempotencyRepository persists idempotency records keyed by key hash.
type IdempotencyRepository interface {
	// ClaimPending atomically inserts a pending record, or takes over an existing
	// one that is expired or whose lease lapsed for the same request hash.
	// It reports whether the caller now holds the claim.
	ClaimPending(ctx context.Context, record domain.IdempotencyRecord, now time.Time) (bool, error)

	// FindByKeyHash returns the record for keyHash or apperrors.ErrNotFound.
	FindByKeyHash(ctx context.Context, keyHash string) (*domain.IdempotencyRecord, error)

	// MarkCompletedTx links a pending record to its entry inside the posting
	// transaction. It fails with apperrors.ErrConflict if the record is no
	// longer pending or was re-claimed under another token.
	MarkCompletedTx(ctx context.Context, tx pgx.Tx, keyHash string, claimToken string, entryID int64) error

	// PurgeExpired deletes records whose expiry is at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
