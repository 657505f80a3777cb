package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.Now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after checking its type.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" || req.Type == "" {
		return nil, apperrors.NewValidationError("code, name, type are required")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("type must be one of Asset, Liability, Equity, Revenue, Expense").
			WithDetail("type", string(req.Type))
	}

	now := s.now()
	account := domain.Account{
		Code:      code,
		Name:      name,
		Type:      req.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.logFailure(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", saved.AccountID), slog.String("code", saved.Code))
	return saved, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Account not found").WithDetail("account_id", accountID)
		}
		s.LogError(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves an account by code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Account not found").WithDetail("code", code)
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("code", code))
		return nil, err
	}
	return account, nil
}

// ResolveAccount treats ref as a code first. Codes may be numeric, so a
// numeric ref only falls back to an ID lookup when no code matches.
func (s *accountService) ResolveAccount(ctx context.Context, ref string) (*domain.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.NewValidationError("account reference is required")
	}

	account, err := s.GetAccountByCode(ctx, ref)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return account, err
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil || id <= 0 {
		return nil, err
	}
	return s.GetAccountByID(ctx, id)
}

// ListAccounts lists accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error) {
	if accountType != nil && !accountType.IsValid() {
		return nil, apperrors.NewValidationError("type must be one of Asset, Liability, Equity, Revenue, Expense").
			WithDetail("type", string(*accountType))
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}
