package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectAPIKeyFields = `id, key_hash, name, is_active, last_used_at, expires_at, created_at`

	findActiveAPIKeyQuery = `
		SELECT ` + selectAPIKeyFields + `
		FROM api_keys
		WHERE key_hash = $1 AND is_active = TRUE
	`

	touchAPIKeyQuery = `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`

	upsertAPIKeyQuery = `
		INSERT INTO api_keys (key_hash, name, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (key_hash) DO UPDATE SET is_active = TRUE, name = EXCLUDED.name
		RETURNING ` + selectAPIKeyFields
)

type PgxAPIKeyRepository struct {
	BaseRepository
}

// newPgxAPIKeyRepository creates a new instance of PgxAPIKeyRepository
func newPgxAPIKeyRepository(db *pgxpool.Pool) portsrepo.APIKeyRepository {
	return &PgxAPIKeyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.APIKeyRepository = (*PgxAPIKeyRepository)(nil)

func (r *PgxAPIKeyRepository) collectOne(rows pgx.Rows, queryErr error, msg string) (*domain.APIKey, error) {
	if queryErr != nil {
		return nil, wrapPgError(queryErr, msg)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.APIKey])
	if err != nil {
		return nil, wrapPgError(err, msg)
	}
	key := mapping.ToDomainAPIKey(m)
	return &key, nil
}

// FindActiveByHash finds an active key by hash.
func (r *PgxAPIKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	rows, err := r.Pool.Query(ctx, findActiveAPIKeyQuery, keyHash)
	return r.collectOne(rows, err, "failed to find api key")
}

// TouchLastUsed updates last_used_at.
func (r *PgxAPIKeyRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.Pool.Exec(ctx, touchAPIKeyQuery, id, at); err != nil {
		return wrapPgError(err, "failed to update api key "+strconv.FormatInt(id, 10))
	}
	return nil
}

// UpsertKey creates or reactivates a key.
func (r *PgxAPIKeyRepository) UpsertKey(ctx context.Context, name string, keyHash string) (*domain.APIKey, error) {
	rows, err := r.Pool.Query(ctx, upsertAPIKeyQuery, keyHash, name)
	return r.collectOne(rows, err, "failed to upsert api key")
}
