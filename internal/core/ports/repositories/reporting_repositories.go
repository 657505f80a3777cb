package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetAccountTotals sums the debit and credit cents posted to an account,
	// restricted to entries dated on or before asOf when it is non-nil.
	GetAccountTotals(ctx context.Context, accountID int64, asOf *time.Time) (debits int64, credits int64, err error)

	// GetTrialBalanceData returns one row per account, ordered by code, with
	// activity from entries dated within [from, to]. Accounts with no activity
	// are included with zero totals.
	GetTrialBalanceData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
