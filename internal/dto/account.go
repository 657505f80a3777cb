package dto

import (
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// Presence is checked by the account service so that a missing field yields
// a single combined reason.
type CreateAccountRequest struct {
	Code string             `json:"code" binding:"max=10"`
	Name string             `json:"name" binding:"max=255"`
	Type domain.AccountType `json:"type" binding:"omitempty,oneof=Asset Liability Equity Revenue Expense"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID        int64              `json:"id"`
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AccountSummary is the compact account shape embedded in balance responses.
type AccountSummary struct {
	Code string             `json:"code"`
	Name string             `json:"name"`
	Type domain.AccountType `json:"type"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type string `form:"type" binding:"omitempty,oneof=Asset Liability Equity Revenue Expense"`
}

// AccountBalanceParams defines query parameters for a balance query.
type AccountBalanceParams struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	Account AccountSummary `json:"account"`
	AsOf    *string        `json:"as_of"`
	Debits  int64          `json:"debits"`
	Credits int64          `json:"credits"`
	Balance int64          `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.AccountID,
		Code:      acc.Code,
		Name:      acc.Name,
		Type:      acc.Type,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its response DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	resp := AccountBalanceResponse{
		Account: AccountSummary{
			Code: b.Account.Code,
			Name: b.Account.Name,
			Type: b.Account.Type,
		},
		Debits:  b.Debits,
		Credits: b.Credits,
		Balance: b.Balance,
	}
	if b.AsOf != nil {
		asOf := b.AsOf.Format(domain.DateLayout)
		resp.AsOf = &asOf
	}
	return resp
}
