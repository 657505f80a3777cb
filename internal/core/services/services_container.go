package services

import (
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	container.Validator = NewEntryValidator(
		repos.AccountRepo,
		repos.JournalRepo,
		WithDuplicateAccountRule(cfg.RejectDuplicateAccounts),
	)

	container.Idempotency = NewIdempotencyService(
		repos.IdempotencyRepo,
		WithIdempotencyTTL(cfg.IdempotencyTTL),
		WithIdempotencyLease(cfg.IdempotencyLease),
		WithReplayWait(cfg.IdempotencyWait, cfg.IdempotencyPollInterval),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Validator,
		container.Idempotency,
		WithPostingTimeout(cfg.PostingTimeout),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingAccountResolver(container.Account),
	)

	container.APIKey = NewAPIKeyService(repos.APIKeyRepo)

	return container
}
