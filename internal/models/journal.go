package models

import "time"

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	ID              int64     `db:"id"`
	EntryDate       time.Time `db:"entry_date"`
	Narration       string    `db:"narration"`
	ReversesEntryID *int64    `db:"reverses_entry_id"` // Nullable
	PostedAt        time.Time `db:"posted_at"`
	CreatedAt       time.Time `db:"created_at"`
}

// JournalLine is the row shape of the journal_lines table. AccountCode and
// AccountName come from a join with accounts and are not stored on the line.
type JournalLine struct {
	ID          int64  `db:"id"`
	EntryID     int64  `db:"entry_id"`
	AccountID   int64  `db:"account_id"`
	DebitCents  int64  `db:"debit_cents"`
	CreditCents int64  `db:"credit_cents"`
	LineIndex   int16  `db:"line_index"`
	AccountCode string `db:"account_code"`
	AccountName string `db:"account_name"`
}
