package services

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// GetAccountByCode retrieves a specific account by its code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ResolveAccount looks ref up as a code first and then as a numeric ID.
	ResolveAccount(ctx context.Context, ref string) (*domain.Account, error)

	// ListAccounts lists accounts ordered by code, optionally filtered by type.
	ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates a new account. A duplicate code is a conflict.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
