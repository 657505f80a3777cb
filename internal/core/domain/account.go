package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

// AccountTypes lists every valid account type in chart-of-accounts order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	for _, v := range AccountTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsDebitNormal reports whether accounts of this type normally carry a
// positive balance under the debit-minus-credit convention.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account is an immutable ledger account. Journal lines reference it by ID.
type Account struct {
	AccountID int64       `json:"id"`
	Code      string      `json:"code"` // Unique, caller-facing (e.g. "1001")
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
