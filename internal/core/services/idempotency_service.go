package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/utils/hashing"
)

const (
	defaultIdempotencyLease = 30 * time.Second
	defaultReplayWait       = 5 * time.Second
	defaultReplayPoll       = 100 * time.Millisecond

	// maxClaimAttempts bounds the claim loop when records keep disappearing
	// between the claim and the lookup (purge or expiry races).
	maxClaimAttempts = 5
)

const (
	msgIdempotencyMismatch   = "Idempotency conflict: request body mismatch for same key"
	msgIdempotencyInProgress = "request with this Idempotency-Key is still being processed"
	msgIdempotencyClaimLost  = "request with this Idempotency-Key was taken over by another attempt"
)

// idempotencyService implements the IdempotencySvc interface
type idempotencyService struct {
	BaseService
	repo       portsrepo.IdempotencyRepository
	ttl        time.Duration
	lease      time.Duration
	replayWait time.Duration
	replayPoll time.Duration
}

// IdempotencyServiceOption is a functional option for configuring the idempotency service
type IdempotencyServiceOption func(*idempotencyService)

// WithIdempotencyTTL sets how long a record deduplicates retries.
func WithIdempotencyTTL(ttl time.Duration) IdempotencyServiceOption {
	return func(s *idempotencyService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIdempotencyLease sets how long a pending claim is protected before
// another attempt with the same body may take it over.
func WithIdempotencyLease(lease time.Duration) IdempotencyServiceOption {
	return func(s *idempotencyService) {
		if lease > 0 {
			s.lease = lease
		}
	}
}

// WithReplayWait sets how long a retry waits for an in-flight attempt and how
// often it re-reads the record meanwhile.
func WithReplayWait(wait, poll time.Duration) IdempotencyServiceOption {
	return func(s *idempotencyService) {
		if wait >= 0 {
			s.replayWait = wait
		}
		if poll > 0 {
			s.replayPoll = poll
		}
	}
}

// WithIdempotencyClock overrides the clock used for expiry and lease checks.
func WithIdempotencyClock(now func() time.Time) IdempotencyServiceOption {
	return func(s *idempotencyService) {
		s.Now = now
	}
}

// NewIdempotencyService creates a new idempotency service with the provided options
func NewIdempotencyService(repo portsrepo.IdempotencyRepository, options ...IdempotencyServiceOption) portssvc.IdempotencySvc {
	svc := &idempotencyService{
		repo:       repo,
		ttl:        domain.DefaultIdempotencyTTL,
		lease:      defaultIdempotencyLease,
		replayWait: defaultReplayWait,
		replayPoll: defaultReplayPoll,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.IdempotencySvc = (*idempotencyService)(nil)

// Acquire claims the key or resolves it against an existing record.
func (s *idempotencyService) Acquire(ctx context.Context, req domain.IdempotencyRequest) (*domain.IdempotencyClaim, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return &domain.IdempotencyClaim{Enforced: false, RequestHash: req.RequestHash}, nil
	}

	scope := req.ScopeToken
	if scope == "" {
		scope = domain.PublicScope
	}
	keyHash := hashing.KeyHash(scope, key)
	deadline := s.now().Add(s.replayWait)

	for attempt := 1; ; attempt++ {
		claim, record, err := s.tryClaim(ctx, keyHash, req.RequestHash)
		if err != nil {
			return nil, err
		}
		if claim != nil {
			return claim, nil
		}

		if record == nil || record.IsExpired(s.now()) {
			// Gone or stale between the claim and the read; claim again.
			if attempt >= maxClaimAttempts {
				return nil, apperrors.NewConflictError(msgIdempotencyInProgress)
			}
			continue
		}

		if record.RequestHash != req.RequestHash {
			s.LogWarn(ctx, apperrors.ErrConflict, "Idempotency key reused with a different body",
				slog.String("key_hash", keyHash))
			return nil, apperrors.NewConflictError(msgIdempotencyMismatch)
		}

		if !record.IsPending() {
			s.LogInfo(ctx, "Replaying idempotent request",
				slog.String("key_hash", keyHash),
				slog.Int64("entry_id", *record.EntryID))
			return &domain.IdempotencyClaim{
				Enforced:      true,
				KeyHash:       keyHash,
				RequestHash:   req.RequestHash,
				ReplayEntryID: record.EntryID,
			}, nil
		}

		// Same body, still pending: wait for the holder to finish, or for its
		// lease to lapse so that the next claim can take over.
		if !s.now().Before(deadline) {
			s.LogWarn(ctx, apperrors.ErrConflict, "Gave up waiting for in-flight request",
				slog.String("key_hash", keyHash))
			return nil, apperrors.NewConflictError(msgIdempotencyInProgress)
		}
		select {
		case <-ctx.Done():
			return nil, apperrors.NewConflictError(msgIdempotencyInProgress)
		case <-time.After(s.replayPoll):
		}
		attempt = 0
	}
}

// tryClaim attempts the atomic claim. When the claim is not won it returns the
// current record, or nil if none exists any more.
func (s *idempotencyService) tryClaim(ctx context.Context, keyHash, requestHash string) (*domain.IdempotencyClaim, *domain.IdempotencyRecord, error) {
	now := s.now()
	token := uuid.NewString()
	record := domain.IdempotencyRecord{
		KeyHash:     keyHash,
		RequestHash: requestHash,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		ClaimToken:  token,
		LockedUntil: now.Add(s.lease),
	}

	claimed, err := s.repo.ClaimPending(ctx, record, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to claim idempotency key", slog.String("key_hash", keyHash))
		return nil, nil, err
	}
	if claimed {
		s.LogDebug(ctx, "Claimed idempotency key", slog.String("key_hash", keyHash))
		return &domain.IdempotencyClaim{
			Enforced:    true,
			KeyHash:     keyHash,
			RequestHash: requestHash,
			ClaimToken:  token,
		}, nil, nil
	}

	existing, err := s.repo.FindByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil
		}
		s.LogError(ctx, err, "Failed to read idempotency record", slog.String("key_hash", keyHash))
		return nil, nil, err
	}
	return nil, existing, nil
}

// FinalizeHook links the claim to the entry inside the posting transaction.
func (s *idempotencyService) FinalizeHook(claim *domain.IdempotencyClaim) portsrepo.TxHook {
	if claim == nil || !claim.Enforced || claim.IsReplay() {
		return nil
	}
	keyHash, token := claim.KeyHash, claim.ClaimToken
	return func(ctx context.Context, tx pgx.Tx, entryID int64) error {
		if err := s.repo.MarkCompletedTx(ctx, tx, keyHash, token, entryID); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.NewConflictError(msgIdempotencyClaimLost)
			}
			return err
		}
		return nil
	}
}

// PurgeExpired removes expired records.
func (s *idempotencyService) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.repo.PurgeExpired(ctx, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to purge idempotency records")
		return 0, err
	}
	if purged > 0 {
		s.LogInfo(ctx, "Purged expired idempotency records", slog.Int64("count", purged))
	}
	return purged, nil
}
