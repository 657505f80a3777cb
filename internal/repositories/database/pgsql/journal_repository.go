package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournalEntry inserts the header, then every line in one batch, then runs
// finalize, all inside a single transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.NormalizedEntry, finalize portsrepo.TxHook) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	// 1. Insert the entry header
	headerQuery := `
		INSERT INTO journal_entries (entry_date, narration, reverses_entry_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var entryID int64
	if err := tx.QueryRow(ctx, headerQuery, entry.Date, entry.Narration, entry.ReversesEntryID).Scan(&entryID); err != nil {
		return 0, wrapPgError(err, "failed to insert journal entry")
	}

	// 2. Insert lines in submission order
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, debit_cents, credit_cents, line_index)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			entryID,
			modelLine.AccountID,
			modelLine.DebitCents,
			modelLine.CreditCents,
			modelLine.LineIndex,
		)
	}

	// Close reports the first failing command of the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, wrapPgError(err, "failed to insert lines for journal entry "+strconv.FormatInt(entryID, 10))
	}

	// 3. Finalize hooks (idempotency) share the transaction
	if finalize != nil {
		if err := finalize(ctx, tx, entryID); err != nil {
			return 0, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryID, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `
		SELECT id, entry_date, narration, reverses_entry_id, posted_at, created_at
		FROM journal_entries
		WHERE id = $1
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, wrapPgError(err, "failed to query journal entry")
	}
	modelEntry, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, wrapPgError(err, "failed to find journal entry "+strconv.FormatInt(entryID, 10))
	}

	domainEntry := mapping.ToDomainJournalEntry(modelEntry)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves the lines of an entry ordered by line_index.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	query := `
		SELECT jl.id, jl.entry_id, jl.account_id, jl.debit_cents, jl.credit_cents, jl.line_index,
		       a.code AS account_code, a.name AS account_name
		FROM journal_lines jl
		JOIN accounts a ON a.id = jl.account_id
		WHERE jl.entry_id = $1
		ORDER BY jl.line_index ASC
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, wrapPgError(err, "failed to query journal lines")
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, wrapPgError(err, "failed to scan journal lines")
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// EntryExists reports whether an entry with the ID exists.
func (r *PgxJournalRepository) EntryExists(ctx context.Context, entryID int64) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE id = $1)`, entryID).Scan(&exists)
	if err != nil {
		return false, wrapPgError(err, "failed to check journal entry")
	}
	return exists, nil
}
