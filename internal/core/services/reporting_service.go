package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountReaderSvc
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAccountResolver sets the service used to resolve account references.
func WithReportingAccountResolver(accountSvc portssvc.AccountReaderSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.accountSvc = accountSvc
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetAccountBalance sums an account's lines, optionally up to asOf inclusive.
func (s *reportingService) GetAccountBalance(ctx context.Context, ref string, asOf *time.Time) (*domain.AccountBalance, error) {
	if s.accountSvc == nil {
		return nil, apperrors.NewStorageError("account resolver not configured", nil)
	}
	account, err := s.accountSvc.ResolveAccount(ctx, ref)
	if err != nil {
		return nil, err
	}

	debits, credits, err := s.reportingRepo.GetAccountTotals(ctx, account.AccountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account totals",
			slog.Int64("account_id", account.AccountID))
		return nil, err
	}

	return &domain.AccountBalance{
		Account: *account,
		AsOf:    asOf,
		Debits:  debits,
		Credits: credits,
		Balance: debits - credits,
	}, nil
}

// GetTrialBalance aggregates every account's activity within [from, to].
func (s *reportingService) GetTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error) {
	if from.After(to) {
		return nil, apperrors.NewValidationError("from must not be after to").
			WithDetail("from", from.Format(domain.DateLayout)).
			WithDetail("to", to.Format(domain.DateLayout))
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("from", from.Format(domain.DateLayout)),
			slog.String("to", to.Format(domain.DateLayout)))
		return nil, err
	}

	tb := &domain.TrialBalance{From: from, To: to, Rows: rows}
	for i := range tb.Rows {
		tb.Rows[i].Balance = tb.Rows[i].Debits - tb.Rows[i].Credits
		tb.TotalDebits += tb.Rows[i].Debits
		tb.TotalCredits += tb.Rows[i].Credits
	}

	if !tb.IsBalanced() {
		// Every posted entry balances, so this means the ledger was written
		// around the posting path.
		s.LogError(ctx, apperrors.ErrStorage, "Trial balance totals do not match",
			slog.Int64("debits", tb.TotalDebits),
			slog.Int64("credits", tb.TotalCredits))
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("from", from.Format(domain.DateLayout)),
		slog.String("to", to.Format(domain.DateLayout)),
		slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}
