package services

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/dto"
)

// EntryValidatorSvc normalizes and validates a proposed journal entry.
type EntryValidatorSvc interface {
	// Validate returns the normalized entry or a validation error naming the
	// first violated rule. It performs read-only account lookups only.
	Validate(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.NormalizedEntry, error)
}

// IdempotencySvc deduplicates retried write requests scoped by caller identity.
type IdempotencySvc interface {
	// Acquire claims the request's key, or reports that an earlier request with
	// the same key already posted an entry. A request without a key yields a
	// claim with Enforced set to false.
	Acquire(ctx context.Context, req domain.IdempotencyRequest) (*domain.IdempotencyClaim, error)

	// FinalizeHook returns the hook that links the claim to the posted entry
	// inside the posting transaction, or nil when the claim is not enforced.
	FinalizeHook(claim *domain.IdempotencyClaim) portsrepo.TxHook

	// PurgeExpired removes expired records and reports how many were deleted.
	PurgeExpired(ctx context.Context) (int64, error)
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry header with its ordered, annotated lines.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry validates, deduplicates and posts a journal entry.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, idem domain.IdempotencyRequest) (*domain.PostingResult, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
