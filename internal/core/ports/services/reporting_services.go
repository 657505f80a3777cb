package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// ReportingService computes balances and trial balances from posted lines.
type ReportingService interface {
	// GetAccountBalance returns debits minus credits for the account named by
	// ref (code or id), restricted to entries dated on or before asOf if set.
	GetAccountBalance(ctx context.Context, ref string, asOf *time.Time) (*domain.AccountBalance, error)

	// GetTrialBalance aggregates every account's activity within [from, to].
	GetTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error)
}
