package mapping

import (
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/models"
)

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.ID,
		Date:            m.EntryDate,
		Narration:       m.Narration,
		ReversesEntryID: m.ReversesEntryID,
		PostedAt:        m.PostedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:          d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		DebitCents:  d.DebitCents,
		CreditCents: d.CreditCents,
		LineIndex:   int16(d.LineIndex),
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.ID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		DebitCents:  m.DebitCents,
		CreditCents: m.CreditCents,
		LineIndex:   int(m.LineIndex),
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainIdempotencyRecord converts a model IdempotencyKey to a domain record
func ToDomainIdempotencyRecord(m models.IdempotencyKey) domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		KeyHash:     m.KeyHash,
		RequestHash: m.RequestHash,
		EntryID:     m.EntryID,
		ClaimToken:  m.ClaimToken,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
		LockedUntil: m.LockedUntil,
	}
}

// ToModelIdempotencyKey converts a domain record to a model IdempotencyKey
func ToModelIdempotencyKey(d domain.IdempotencyRecord) models.IdempotencyKey {
	return models.IdempotencyKey{
		KeyHash:     d.KeyHash,
		RequestHash: d.RequestHash,
		EntryID:     d.EntryID,
		ClaimToken:  d.ClaimToken,
		CreatedAt:   d.CreatedAt,
		ExpiresAt:   d.ExpiresAt,
		LockedUntil: d.LockedUntil,
	}
}
