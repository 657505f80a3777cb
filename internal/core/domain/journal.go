package domain

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date wire format for entry dates and report ranges.
const DateLayout = "2006-01-02"

// MaxLinesPerEntry bounds line_index, which is stored as SMALLINT.
const MaxLinesPerEntry = 1000

var (
	ErrLineBothSides    = errors.New("line must not carry both a debit and a credit")
	ErrLineNoSide       = errors.New("line must carry either a debit or a credit")
	ErrLineNegative     = errors.New("line amounts must be non-negative")
	ErrEntryTooFewLines = errors.New("entry must have at least two lines")
	ErrEntryUnbalanced  = errors.New("debits and credits must balance")
)

// JournalEntry is the header of a posted, balanced entry. It is created once
// per successful posting and never mutated afterwards.
type JournalEntry struct {
	EntryID         int64         `json:"id"`
	Date            time.Time     `json:"date"`
	Narration       string        `json:"narration"`
	ReversesEntryID *int64        `json:"reverses_entry_id"`
	PostedAt        time.Time     `json:"posted_at"`
	CreatedAt       time.Time     `json:"created_at"`
	Lines           []JournalLine `json:"lines,omitempty"`
}

// JournalLine moves exactly one side of the ledger for one account.
type JournalLine struct {
	LineID      int64 `json:"id"`
	EntryID     int64 `json:"entry_id"`
	AccountID   int64 `json:"account_id"`
	DebitCents  int64 `json:"debit_cents"`
	CreditCents int64 `json:"credit_cents"`
	LineIndex   int   `json:"line_index"` // 1-based position within the entry

	// Display annotations, populated on reads only.
	AccountCode string `json:"account_code,omitempty"`
	AccountName string `json:"account_name,omitempty"`
}

// Validate checks the exactly-one-side rule for a single line.
func (l JournalLine) Validate() error {
	if l.DebitCents < 0 || l.CreditCents < 0 {
		return ErrLineNegative
	}
	if l.DebitCents > 0 && l.CreditCents > 0 {
		return ErrLineBothSides
	}
	if l.DebitCents == 0 && l.CreditCents == 0 {
		return ErrLineNoSide
	}
	return nil
}

// Totals returns the debit and credit sums across lines.
func Totals(lines []JournalLine) (debits, credits int64) {
	for _, l := range lines {
		debits += l.DebitCents
		credits += l.CreditCents
	}
	return debits, credits
}

// ValidateEntryLines checks the entry-level invariants that do not need the
// account directory: line count, per-line shape and balance.
func ValidateEntryLines(lines []JournalLine) error {
	if len(lines) < 2 {
		return ErrEntryTooFewLines
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	debits, credits := Totals(lines)
	if debits != credits {
		return ErrEntryUnbalanced
	}
	return nil
}

// NormalizedEntry is a validated submission ready for the posting transaction.
// Lines carry resolved account IDs and line_index values in submission order.
type NormalizedEntry struct {
	Date            time.Time
	Narration       string
	ReversesEntryID *int64
	Lines           []JournalLine
	TotalDebits     int64
	TotalCredits    int64
}

// PostingResult is the outcome of a create-entry request. Replayed is true when
// the entry was posted by an earlier request carrying the same idempotency key.
type PostingResult struct {
	Entry    *JournalEntry
	Replayed bool
}
