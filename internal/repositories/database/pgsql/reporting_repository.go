package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountTotals sums an account's posted debits and credits.
func (r *reportingRepository) GetAccountTotals(ctx context.Context, accountID int64, asOf *time.Time) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(jl.debit_cents), 0)::BIGINT  AS debits,
			COALESCE(SUM(jl.credit_cents), 0)::BIGINT AS credits
		FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entry_id
		WHERE jl.account_id = $1
		  AND ($2::date IS NULL OR je.entry_date <= $2::date)
	`

	var debits, credits int64
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&debits, &credits); err != nil {
		return 0, 0, wrapPgError(err, "error querying account totals")
	}
	return debits, credits, nil
}

// GetTrialBalanceData aggregates per-account activity over [from, to]. The date
// filter sits in the join so accounts without activity survive the left join.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.id,
			a.code,
			a.name,
			a.type,
			COALESCE(SUM(act.debit_cents), 0)::BIGINT  AS debits,
			COALESCE(SUM(act.credit_cents), 0)::BIGINT AS credits
		FROM accounts a
		LEFT JOIN (
			SELECT jl.account_id, jl.debit_cents, jl.credit_cents
			FROM journal_lines jl
			JOIN journal_entries je ON je.id = jl.entry_id
			WHERE je.entry_date BETWEEN $1::date AND $2::date
		) act ON act.account_id = a.id
		GROUP BY a.id, a.code, a.name, a.type
		ORDER BY a.code ASC
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, wrapPgError(err, "error querying trial balance data")
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TrialBalanceRow, error) {
		var tb domain.TrialBalanceRow
		var accountType string
		err := row.Scan(
			&tb.AccountID,
			&tb.AccountCode,
			&tb.AccountName,
			&accountType,
			&tb.Debits,
			&tb.Credits,
		)
		tb.AccountType = domain.AccountType(accountType)
		return tb, err
	})
	if err != nil {
		return nil, wrapPgError(err, "error scanning trial balance rows")
	}

	if result == nil {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}
	return result, nil
}
