package repositories

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its ID.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line_index,
	// annotated with the account code and name.
	FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error)

	// EntryExists reports whether an entry with the given ID has been posted.
	EntryExists(ctx context.Context, entryID int64) (bool, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournalEntry writes the header and every line in one transaction and
	// returns the new entry ID. When finalize is non-nil it runs inside the same
	// transaction; either everything commits or nothing does.
	SaveJournalEntry(ctx context.Context, entry domain.NormalizedEntry, finalize TxHook) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
