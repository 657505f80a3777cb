package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/utils/hashing"
)

// apiKeyService implements the APIKeySvc interface
type apiKeyService struct {
	BaseService
	keyRepo portsrepo.APIKeyRepository
}

// APIKeyServiceOption is a functional option for configuring the API key service
type APIKeyServiceOption func(*apiKeyService)

// WithAPIKeyClock overrides the clock used for expiry checks.
func WithAPIKeyClock(now func() time.Time) APIKeyServiceOption {
	return func(s *apiKeyService) {
		s.Now = now
	}
}

// NewAPIKeyService creates a new instance of apiKeyService
func NewAPIKeyService(keyRepo portsrepo.APIKeyRepository, options ...APIKeyServiceOption) portssvc.APIKeySvc {
	svc := &apiKeyService{
		keyRepo: keyRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.APIKeySvc = (*apiKeyService)(nil)

// Authenticate checks if a key is valid and returns it
func (s *apiKeyService) Authenticate(ctx context.Context, rawKey string) (*domain.APIKey, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return nil, apperrors.NewUnauthorizedError("API key required")
	}

	key, err := s.keyRepo.FindActiveByHash(ctx, hashing.SHA256Hex(rawKey))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid API key")
		}
		s.LogError(ctx, err, "Failed to look up API key")
		return nil, err
	}

	now := s.now()
	if key.IsExpired(now) {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Expired API key presented", slog.Int64("api_key_id", key.ID))
		return nil, apperrors.NewUnauthorizedError("Invalid API key")
	}

	// Update last used timestamp. A failure here must not reject the request.
	if err := s.keyRepo.TouchLastUsed(ctx, key.ID, now); err != nil {
		s.LogWarn(ctx, err, "Failed to record API key usage", slog.Int64("api_key_id", key.ID))
	} else {
		key.LastUsedAt = &now
	}

	return key, nil
}

// EnsureDefaultKey upserts the bootstrap key.
func (s *apiKeyService) EnsureDefaultKey(ctx context.Context, name string, rawKey string) error {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return apperrors.NewValidationError("default API key must not be empty")
	}
	if name == "" {
		name = "default"
	}

	key, err := s.keyRepo.UpsertKey(ctx, name, hashing.SHA256Hex(rawKey))
	if err != nil {
		s.LogError(ctx, err, "Failed to ensure default API key", slog.String("name", name))
		return err
	}

	s.LogInfo(ctx, "Default API key ready", slog.Int64("api_key_id", key.ID), slog.String("name", key.Name))
	return nil
}
