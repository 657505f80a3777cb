package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
)

const defaultPostingTimeout = 10 * time.Second

// journalService posts validated entries and reads them back.
type journalService struct {
	BaseService
	journalRepo    portsrepo.JournalRepositoryWithTx
	validator      portssvc.EntryValidatorSvc
	idempotency    portssvc.IdempotencySvc
	postingTimeout time.Duration
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithPostingTimeout bounds the posting transaction. It must stay below the
// idempotency lease so a slow attempt cannot outlive its claim.
func WithPostingTimeout(timeout time.Duration) JournalServiceOption {
	return func(s *journalService) {
		if timeout > 0 {
			s.postingTimeout = timeout
		}
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, validator portssvc.EntryValidatorSvc, idempotency portssvc.IdempotencySvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:    journalRepo,
		validator:      validator,
		idempotency:    idempotency,
		postingTimeout: defaultPostingTimeout,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates the request, resolves its idempotency key and posts
// the entry atomically with the key's finalization.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, idem domain.IdempotencyRequest) (*domain.PostingResult, error) {
	entry, err := s.validator.Validate(ctx, req)
	if err != nil {
		s.logFailure(ctx, err, "Journal entry rejected")
		return nil, err
	}

	// A claim must never be taken for lines the posting would refuse.
	if err := domain.ValidateEntryLines(entry.Lines); err != nil {
		verr := apperrors.NewValidationError(err.Error())
		s.logFailure(ctx, verr, "Journal entry rejected")
		return nil, verr
	}

	claim, err := s.idempotency.Acquire(ctx, idem)
	if err != nil {
		s.logFailure(ctx, err, "Idempotency check failed")
		return nil, err
	}

	if claim.IsReplay() {
		replayed, err := s.GetEntry(ctx, *claim.ReplayEntryID)
		if err != nil {
			return nil, err
		}
		return &domain.PostingResult{Entry: replayed, Replayed: true}, nil
	}

	postCtx, cancel := context.WithTimeout(ctx, s.postingTimeout)
	defer cancel()

	entryID, err := s.journalRepo.SaveJournalEntry(postCtx, *entry, s.idempotency.FinalizeHook(claim))
	if err != nil {
		s.logFailure(ctx, err, "Failed to post journal entry",
			slog.String("date", entry.Date.Format(domain.DateLayout)),
			slog.Int("line_count", len(entry.Lines)))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", entryID),
		slog.Int("line_count", len(entry.Lines)),
		slog.Int64("total_cents", entry.TotalDebits),
		slog.Bool("idempotent", claim.Enforced))

	posted, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return &domain.PostingResult{Entry: posted}, nil
}

// GetEntry retrieves an entry with its lines ordered by line_index.
func (s *journalService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Journal entry not found").WithDetail("entry_id", entryID)
		}
		s.LogError(ctx, err, "Failed to get journal entry", slog.Int64("entry_id", entryID))
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get journal lines", slog.Int64("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}
