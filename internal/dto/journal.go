package dto

import (
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest is the body of a create-entry call. Presence and
// shape rules are enforced by the entry validator so that every failure
// carries a ledger-specific reason.
type CreateJournalEntryRequest struct {
	Date            string               `json:"date"`
	Narration       string               `json:"narration" binding:"max=1000"`
	ReversesEntryID *int64               `json:"reverses_entry_id,omitempty"`
	Lines           []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// JournalLineRequest references an account by id or code and moves one side.
// Amounts are integer minor units. debit/credit are accepted as aliases of
// debit_cents/credit_cents.
type JournalLineRequest struct {
	AccountID   *int64           `json:"account_id,omitempty" binding:"omitempty,gt=0"`
	AccountCode *string          `json:"account_code,omitempty" binding:"omitempty,max=10"`
	DebitCents  *decimal.Decimal `json:"debit_cents,omitempty"`
	CreditCents *decimal.Decimal `json:"credit_cents,omitempty"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
}

// JournalLineResponse defines the data returned for a single line.
type JournalLineResponse struct {
	ID          int64  `json:"id"`
	LineIndex   int    `json:"line_index"`
	AccountID   int64  `json:"account_id"`
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	DebitCents  int64  `json:"debit_cents"`
	CreditCents int64  `json:"credit_cents"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID              int64                 `json:"id"`
	Date            string                `json:"date"`
	Narration       string                `json:"narration"`
	ReversesEntryID *int64                `json:"reverses_entry_id"`
	PostedAt        time.Time             `json:"posted_at"`
	Lines           []JournalLineResponse `json:"lines"`
}

// CreateJournalEntryResponse wraps the posted entry. Idempotent is set when
// the entry came from an earlier request with the same idempotency key.
type CreateJournalEntryResponse struct {
	Data       JournalEntryResponse `json:"data"`
	Idempotent bool                 `json:"idempotent,omitempty"`
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{
			ID:          l.LineID,
			LineIndex:   l.LineIndex,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			DebitCents:  l.DebitCents,
			CreditCents: l.CreditCents,
		}
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.EntryID,
		Date:            e.Date.Format(domain.DateLayout),
		Narration:       e.Narration,
		ReversesEntryID: e.ReversesEntryID,
		PostedAt:        e.PostedAt,
		Lines:           ToJournalLineResponses(e.Lines),
	}
}
