package services

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// APIKeySvc authenticates callers presenting an x-api-key header.
type APIKeySvc interface {
	// Authenticate returns the active, unexpired key matching rawKey or an
	// unauthorized error.
	Authenticate(ctx context.Context, rawKey string) (*domain.APIKey, error)

	// EnsureDefaultKey upserts the bootstrap key so a fresh deployment can write.
	EnsureDefaultKey(ctx context.Context, name string, rawKey string) error
}
