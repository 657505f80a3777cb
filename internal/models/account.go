package models

import "time"

// Account is the row shape of the accounts table.
type Account struct {
	ID        int64     `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	Type      string    `db:"type"` // Asset, Liability, Equity, Revenue or Expense
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
