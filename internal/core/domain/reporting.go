package domain

import "time"

// AccountBalance is the net position of one account, optionally as of a date.
// Balance is debits minus credits for every account type.
type AccountBalance struct {
	Account Account
	AsOf    *time.Time
	Debits  int64
	Credits int64
	Balance int64
}

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   int64
	AccountCode string
	AccountName string
	AccountType AccountType
	Debits      int64
	Credits     int64
	Balance     int64
}

// TrialBalance aggregates activity per account over a closed date range.
type TrialBalance struct {
	From         time.Time
	To           time.Time
	Rows         []TrialBalanceRow
	TotalDebits  int64
	TotalCredits int64
}

// IsBalanced reports whether total debits equal total credits.
func (tb *TrialBalance) IsBalanced() bool {
	return tb.TotalDebits == tb.TotalCredits
}
