package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectAccountFields = `id, code, name, type, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (code, name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + selectAccountFields

	rows, err := r.Pool.Query(ctx, query,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.Type,
		modelAcc.CreatedAt,
		modelAcc.UpdatedAt,
	)
	var saved models.Account
	if err == nil {
		saved, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	}
	if err != nil {
		err = wrapPgError(err, "failed to save account "+modelAcc.Code)
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError("Account code already exists").WithDetail("code", modelAcc.Code)
		}
		return nil, err
	}

	domainAcc := mapping.ToDomainAccount(saved)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + selectAccountFields + ` FROM accounts WHERE ` + where

	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapPgError(err, "failed to query account")
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrapPgError(err, fmt.Sprintf("failed to find account %v", arg))
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return r.findOne(ctx, "id = $1", accountID)
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, "code = $1", code)
}

func (r *PgxAccountRepository) findMany(ctx context.Context, where string, arg any) ([]domain.Account, error) {
	query := `SELECT ` + selectAccountFields + ` FROM accounts WHERE ` + where

	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapPgError(err, "failed to query accounts")
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrapPgError(err, "failed to scan accounts")
	}
	return mapping.ToDomainAccountSlice(modelAccs), nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}

	accounts, err := r.findMany(ctx, "id = ANY($1)", accountIDs)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[int64]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	return accountsMap, nil
}

// FindAccountsByCodes retrieves multiple accounts by their codes.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	accounts, err := r.findMany(ctx, "code = ANY($1)", codes)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.Code] = acc
	}
	return accountsMap, nil
}

// ListAccounts retrieves all accounts ordered by code, optionally of one type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + selectAccountFields + `
		FROM accounts
		WHERE ($1::text IS NULL OR type = $1)
		ORDER BY code ASC
	`
	var typeArg *string
	if accountType != nil {
		t := string(*accountType)
		typeArg = &t
	}

	rows, err := r.Pool.Query(ctx, query, typeArg)
	if err != nil {
		return nil, wrapPgError(err, "failed to list accounts")
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, wrapPgError(err, "failed to scan accounts")
	}
	return mapping.ToDomainAccountSlice(modelAccs), nil
}
