package dto

import (
	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// TrialBalanceParams defines the query parameters of a trial balance report.
type TrialBalanceParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	Code    string             `json:"code"`
	Name    string             `json:"name"`
	Type    domain.AccountType `json:"type"`
	Debits  int64              `json:"debits"`
	Credits int64              `json:"credits"`
	Balance int64              `json:"balance"`
}

// TrialBalanceTotals holds the column sums of a trial balance.
type TrialBalanceTotals struct {
	Debits  int64 `json:"debits"`
	Credits int64 `json:"credits"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	From     string                    `json:"from"`
	To       string                    `json:"to"`
	Accounts []TrialBalanceRowResponse `json:"accounts"`
	Totals   TrialBalanceTotals        `json:"totals"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			Code:    r.AccountCode,
			Name:    r.AccountName,
			Type:    r.AccountType,
			Debits:  r.Debits,
			Credits: r.Credits,
			Balance: r.Balance,
		}
	}
	return TrialBalanceResponse{
		From:     tb.From.Format(domain.DateLayout),
		To:       tb.To.Format(domain.DateLayout),
		Accounts: rows,
		Totals: TrialBalanceTotals{
			Debits:  tb.TotalDebits,
			Credits: tb.TotalCredits,
		},
	}
}
