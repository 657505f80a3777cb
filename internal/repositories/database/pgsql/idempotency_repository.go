package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// claimIdempotencyQuery inserts a pending record or takes over one that is
	// expired, or pending for the same payload with a lapsed lease. The row
	// lock taken by ON CONFLICT serializes concurrent claimants.
	claimIdempotencyQuery = `
		INSERT INTO idempotency_keys (key_hash, request_hash, entry_id, claim_token, created_at, expires_at, locked_until)
		VALUES ($1, $2, NULL, $3, $4, $5, $6)
		ON CONFLICT (key_hash) DO UPDATE SET
			request_hash = EXCLUDED.request_hash,
			entry_id     = NULL,
			claim_token  = EXCLUDED.claim_token,
			created_at   = EXCLUDED.created_at,
			expires_at   = EXCLUDED.expires_at,
			locked_until = EXCLUDED.locked_until
		WHERE idempotency_keys.expires_at <= $7
		   OR (idempotency_keys.entry_id IS NULL
		       AND idempotency_keys.locked_until <= $7
		       AND idempotency_keys.request_hash = EXCLUDED.request_hash)
		RETURNING key_hash
	`

	findIdempotencyQuery = `
		SELECT key_hash, request_hash, entry_id, claim_token::text AS claim_token, created_at, expires_at, locked_until
		FROM idempotency_keys
		WHERE key_hash = $1
	`

	finalizeIdempotencyQuery = `
		UPDATE idempotency_keys
		SET entry_id = $3, locked_until = NOW()
		WHERE key_hash = $1 AND claim_token = $2 AND entry_id IS NULL
	`

	purgeIdempotencyQuery = `DELETE FROM idempotency_keys WHERE expires_at <= $1`
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

// newPgxIdempotencyRepository creates a new repository for idempotency records.
func newPgxIdempotencyRepository(pool *pgxpool.Pool) portsrepo.IdempotencyRepository {
	return &PgxIdempotencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

// ClaimPending attempts the atomic insert-or-take-over of a pending record.
func (r *PgxIdempotencyRepository) ClaimPending(ctx context.Context, record domain.IdempotencyRecord, now time.Time) (bool, error) {
	m := mapping.ToModelIdempotencyKey(record)

	var keyHash string
	err := r.Pool.QueryRow(ctx, claimIdempotencyQuery,
		m.KeyHash,
		m.RequestHash,
		m.ClaimToken,
		m.CreatedAt,
		m.ExpiresAt,
		m.LockedUntil,
		now,
	).Scan(&keyHash)
	if errors.Is(err, pgx.ErrNoRows) {
		// The WHERE clause rejected the takeover; someone else holds the key.
		return false, nil
	}
	if err != nil {
		return false, wrapPgError(err, "failed to claim idempotency key")
	}
	return true, nil
}

// FindByKeyHash retrieves a record by its key hash.
func (r *PgxIdempotencyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*domain.IdempotencyRecord, error) {
	rows, err := r.Pool.Query(ctx, findIdempotencyQuery, keyHash)
	if err != nil {
		return nil, wrapPgError(err, "failed to query idempotency key")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.IdempotencyKey])
	if err != nil {
		return nil, wrapPgError(err, "failed to find idempotency key")
	}

	record := mapping.ToDomainIdempotencyRecord(m)
	return &record, nil
}

// MarkCompletedTx links the claimed record to entryID within tx.
func (r *PgxIdempotencyRepository) MarkCompletedTx(ctx context.Context, tx pgx.Tx, keyHash string, claimToken string, entryID int64) error {
	tag, err := tx.Exec(ctx, finalizeIdempotencyQuery, keyHash, claimToken, entryID)
	if err != nil {
		return wrapPgError(err, "failed to finalize idempotency key")
	}
	if tag.RowsAffected() != 1 {
		return apperrors.NewConflictError("idempotency claim was lost before the entry could be committed")
	}
	return nil
}

// PurgeExpired deletes records that expired at or before now.
func (r *PgxIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, purgeIdempotencyQuery, now)
	if err != nil {
		return 0, wrapPgError(err, "failed to purge idempotency keys")
	}
	return tag.RowsAffected(), nil
}
