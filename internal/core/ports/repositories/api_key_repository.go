package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// APIKeyRepository defines the interface for API key data access operations
type APIKeyRepository interface {
	// FindActiveByHash finds an active key by the sha256 hex of its raw value.
	FindActiveByHash(ctx context.Context, keyHash string) (*domain.APIKey, error)

	// TouchLastUsed records that a key authenticated a request.
	TouchLastUsed(ctx context.Context, id int64, at time.Time) error

	// UpsertKey creates the key, or reactivates it if the hash already exists.
	UpsertKey(ctx context.Context, name string, keyHash string) (*domain.APIKey, error)
}
