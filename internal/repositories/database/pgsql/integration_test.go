//go:build integration

package pgsql_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/core/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/platform/config"
	"github.com/SscSPs/ledger_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_service/internal/utils/hashing"
	"github.com/SscSPs/ledger_service/pkg/database"
)

const migrationsPath = "file://../../../../migrations"

// setupLedger starts a disposable PostgreSQL container, applies migrations
// and wires the repositories and services against it.
func setupLedger(t *testing.T) (*pgxpool.Pool, portsrepo.RepositoryProvider, *portssvc.ServiceContainer) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(dsn, migrationsPath, slog.Default()))

	pool, err := database.NewPgxPool(ctx, dsn, database.PoolOptions{MaxConns: 20, MinConns: 1, ConnectTimeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	cfg := &config.Config{
		IdempotencyTTL:          48 * time.Hour,
		IdempotencyLease:        30 * time.Second,
		IdempotencyWait:         10 * time.Second,
		IdempotencyPollInterval: 20 * time.Millisecond,
		PostingTimeout:          10 * time.Second,
		RejectDuplicateAccounts: true,
	}
	repos := pgsql.NewRepositoryProvider(pool)
	return pool, repos, services.NewServiceContainer(cfg, repos)
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func code(s string) *string { return &s }

func createAccounts(t *testing.T, svc *portssvc.ServiceContainer) map[string]*domain.Account {
	t.Helper()
	accounts := map[string]*domain.Account{}
	for _, req := range []dto.CreateAccountRequest{
		{Code: "1000", Name: "Cash", Type: domain.Asset},
		{Code: "3000", Name: "Capital", Type: domain.Equity},
		{Code: "4000", Name: "Sales", Type: domain.Revenue},
		{Code: "5000", Name: "Rent", Type: domain.Expense},
	} {
		acc, err := svc.Account.CreateAccount(context.Background(), req)
		require.NoError(t, err)
		accounts[req.Code] = acc
	}
	return accounts
}

func transfer(date, narration, debitCode, creditCode string, cents int64) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:      date,
		Narration: narration,
		Lines: []dto.JournalLineRequest{
			{AccountCode: code(debitCode), DebitCents: dec(cents)},
			{AccountCode: code(creditCode), CreditCents: dec(cents)},
		},
	}
}

func idemFor(t *testing.T, key string, req dto.CreateJournalEntryRequest) domain.IdempotencyRequest {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	hash, err := hashing.RequestHash(body)
	require.NoError(t, err)
	return domain.IdempotencyRequest{ScopeToken: domain.PublicScope, Key: key, RequestHash: hash}
}

func countEntries(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM journal_entries`).Scan(&n))
	return n
}

func TestIntegration_BalancesAndTrialBalance(t *testing.T) {
	_, _, svc := setupLedger(t)
	ctx := context.Background()
	createAccounts(t, svc)

	for _, req := range []dto.CreateJournalEntryRequest{
		transfer("2025-01-01", "Initial capital", "1000", "3000", 100000),
		transfer("2025-01-05", "Cash sale", "1000", "4000", 50000),
		transfer("2025-01-07", "January rent", "5000", "1000", 20000),
	} {
		_, err := svc.Journal.CreateEntry(ctx, req, idemFor(t, "", req))
		require.NoError(t, err)
	}

	asOf := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	cash, err := svc.Reporting.GetAccountBalance(ctx, "1000", &asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(130000), cash.Balance)

	early := time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)
	cashEarly, err := svc.Reporting.GetAccountBalance(ctx, "1000", &early)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), cashEarly.Balance)

	tb, err := svc.Reporting.GetTrialBalance(ctx, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), asOf)
	require.NoError(t, err)
	byCode := map[string]domain.TrialBalanceRow{}
	for _, row := range tb.Rows {
		byCode[row.AccountCode] = row
	}
	assert.Equal(t, int64(-50000), byCode["4000"].Balance)
	assert.Equal(t, int64(20000), byCode["5000"].Balance)
	assert.Equal(t, int64(130000), byCode["1000"].Balance)
	assert.Equal(t, tb.TotalDebits, tb.TotalCredits)
	assert.Equal(t, int64(170000), tb.TotalDebits)
}

func TestIntegration_ConcurrentReplayPostsOnce(t *testing.T) {
	pool, _, svc := setupLedger(t)
	ctx := context.Background()
	createAccounts(t, svc)

	req := transfer("2025-02-01", "Retried sale", "1000", "4000", 1234)
	idem := idemFor(t, "retry-1", req)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*domain.PostingResult, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Journal.CreateEntry(ctx, req, idem)
		}(i)
	}
	wg.Wait()

	entryIDs := map[int64]struct{}{}
	replays := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		entryIDs[results[i].Entry.EntryID] = struct{}{}
		if results[i].Replayed {
			replays++
		}
	}
	assert.Len(t, entryIDs, 1)
	assert.Equal(t, callers-1, replays)
	assert.Equal(t, 1, countEntries(t, pool))
}

func TestIntegration_KeyReuseWithDifferentBodyConflicts(t *testing.T) {
	pool, _, svc := setupLedger(t)
	ctx := context.Background()
	createAccounts(t, svc)

	first := transfer("2025-02-01", "Sale", "1000", "4000", 1000)
	_, err := svc.Journal.CreateEntry(ctx, first, idemFor(t, "k", first))
	require.NoError(t, err)

	second := transfer("2025-02-01", "Sale", "1000", "4000", 2000)
	_, err = svc.Journal.CreateEntry(ctx, second, idemFor(t, "k", second))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	// The same key in another scope is independent.
	other := idemFor(t, "k", second)
	other.ScopeToken = "apikey:42"
	_, err = svc.Journal.CreateEntry(ctx, second, other)
	require.NoError(t, err)

	assert.Equal(t, 2, countEntries(t, pool))
}

func TestIntegration_FailedFinalizeRollsBackEntry(t *testing.T) {
	pool, repos, svc := setupLedger(t)
	ctx := context.Background()
	accounts := createAccounts(t, svc)

	entry := domain.NormalizedEntry{
		Date:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Narration: "Doomed",
		Lines: []domain.JournalLine{
			{AccountID: accounts["1000"].AccountID, DebitCents: 500, LineIndex: 1},
			{AccountID: accounts["4000"].AccountID, CreditCents: 500, LineIndex: 2},
		},
		TotalDebits:  500,
		TotalCredits: 500,
	}
	boom := errors.New("finalize failed")
	_, err := repos.JournalRepo.SaveJournalEntry(ctx, entry, func(context.Context, pgx.Tx, int64) error { return boom })
	require.Error(t, err)

	assert.Equal(t, 0, countEntries(t, pool))
	var lines int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines`).Scan(&lines))
	assert.Zero(t, lines)
}

func TestIntegration_ValidationAgainstStore(t *testing.T) {
	_, _, svc := setupLedger(t)
	ctx := context.Background()
	createAccounts(t, svc)

	req := transfer("2025-02-01", "Unknown", "1000", "9999", 100)
	_, err := svc.Journal.CreateEntry(ctx, req, idemFor(t, "", req))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "line 2: unknown account_code 9999", err.Error())

	_, err = svc.Account.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1000", Name: "Cash again", Type: domain.Asset})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestIntegration_APIKeys(t *testing.T) {
	_, _, svc := setupLedger(t)
	ctx := context.Background()

	require.NoError(t, svc.APIKey.EnsureDefaultKey(ctx, "default", "dev-api-key-123"))
	require.NoError(t, svc.APIKey.EnsureDefaultKey(ctx, "default", "dev-api-key-123"))

	key, err := svc.APIKey.Authenticate(ctx, "dev-api-key-123")
	require.NoError(t, err)
	assert.Equal(t, "default", key.Name)

	_, err = svc.APIKey.Authenticate(ctx, "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

// seedIdempotencyKey writes a record directly so that expiry and lease states
// can be arranged without waiting on the clock.
func seedIdempotencyKey(t *testing.T, pool *pgxpool.Pool, keyHash, requestHash string, entryID *int64, expiresAt, lockedUntil time.Time) string {
	t.Helper()
	token := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO idempotency_keys (key_hash, request_hash, entry_id, claim_token, created_at, expires_at, locked_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		keyHash, requestHash, entryID, token, expiresAt.Add(-48*time.Hour), expiresAt, lockedUntil)
	require.NoError(t, err)
	return token
}

func TestIntegration_IdempotencyClaimTakeover(t *testing.T) {
	pool, repos, svc := setupLedger(t)
	ctx := context.Background()
	createAccounts(t, svc)

	seedReq := transfer("2025-04-01", "Seed", "1000", "4000", 100)
	posted, err := svc.Journal.CreateEntry(ctx, seedReq, idemFor(t, "", seedReq))
	require.NoError(t, err)
	entryID := posted.Entry.EntryID

	now := time.Now().UTC().Truncate(time.Microsecond)
	bodyA := hashing.SHA256Hex("body-a")
	bodyB := hashing.SHA256Hex("body-b")

	claimFor := func(keyHash, requestHash string) domain.IdempotencyRecord {
		return domain.IdempotencyRecord{
			KeyHash:     keyHash,
			RequestHash: requestHash,
			ClaimToken:  uuid.NewString(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(48 * time.Hour),
			LockedUntil: now.Add(30 * time.Second),
		}
	}

	tests := []struct {
		name        string
		expiresAt   time.Time
		lockedUntil time.Time
		entryID     *int64
		claimHash   string
		wantClaimed bool
	}{
		{
			name:        "expired completed record with a different body is treated as absent",
			expiresAt:   now.Add(-time.Minute),
			lockedUntil: now.Add(-time.Hour),
			entryID:     &entryID,
			claimHash:   bodyB,
			wantClaimed: true,
		},
		{
			name:        "expired pending record with a different body is treated as absent",
			expiresAt:   now.Add(-time.Minute),
			lockedUntil: now.Add(time.Hour),
			claimHash:   bodyB,
			wantClaimed: true,
		},
		{
			name:        "lapsed lease with the same body is taken over",
			expiresAt:   now.Add(time.Hour),
			lockedUntil: now.Add(-time.Second),
			claimHash:   bodyA,
			wantClaimed: true,
		},
		{
			name:        "lapsed lease with a different body is refused",
			expiresAt:   now.Add(time.Hour),
			lockedUntil: now.Add(-time.Second),
			claimHash:   bodyB,
			wantClaimed: false,
		},
		{
			name:        "live lease with the same body is refused",
			expiresAt:   now.Add(time.Hour),
			lockedUntil: now.Add(time.Minute),
			claimHash:   bodyA,
			wantClaimed: false,
		},
		{
			name:        "live completed record is refused",
			expiresAt:   now.Add(time.Hour),
			lockedUntil: now.Add(-time.Hour),
			entryID:     &entryID,
			claimHash:   bodyA,
			wantClaimed: false,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyHash := hashing.KeyHash(domain.PublicScope, "takeover-"+uuid.NewString())
			seededToken := seedIdempotencyKey(t, pool, keyHash, bodyA, tt.entryID, tt.expiresAt, tt.lockedUntil)
			record := claimFor(keyHash, tt.claimHash)

			claimed, err := repos.IdempotencyRepo.ClaimPending(ctx, record, now)
			require.NoError(t, err, "case %d", i)
			assert.Equal(t, tt.wantClaimed, claimed)

			stored, err := repos.IdempotencyRepo.FindByKeyHash(ctx, keyHash)
			require.NoError(t, err)
			if tt.wantClaimed {
				assert.Equal(t, record.ClaimToken, stored.ClaimToken)
				assert.Equal(t, tt.claimHash, stored.RequestHash)
				assert.Nil(t, stored.EntryID)
				assert.True(t, stored.ExpiresAt.After(now))
			} else {
				assert.Equal(t, seededToken, stored.ClaimToken)
				assert.Equal(t, bodyA, stored.RequestHash)
				assert.Equal(t, tt.entryID, stored.EntryID)
			}
		})
	}
}

func TestIntegration_PurgeExpiredDeletesOnlyExpiredRecords(t *testing.T) {
	pool, repos, _ := setupLedger(t)
	ctx := context.Background()
	now := time.Now().UTC()
	hash := hashing.SHA256Hex("body")

	expiredA := hashing.KeyHash(domain.PublicScope, "old-a")
	expiredB := hashing.KeyHash(domain.PublicScope, "old-b")
	live := hashing.KeyHash(domain.PublicScope, "fresh")
	seedIdempotencyKey(t, pool, expiredA, hash, nil, now.Add(-time.Hour), now.Add(-time.Hour))
	seedIdempotencyKey(t, pool, expiredB, hash, nil, now.Add(-time.Second), now.Add(-time.Hour))
	seedIdempotencyKey(t, pool, live, hash, nil, now.Add(time.Hour), now.Add(time.Minute))

	purged, err := repos.IdempotencyRepo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = repos.IdempotencyRepo.FindByKeyHash(ctx, expiredA)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = repos.IdempotencyRepo.FindByKeyHash(ctx, expiredB)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	stored, err := repos.IdempotencyRepo.FindByKeyHash(ctx, live)
	require.NoError(t, err)
	assert.Equal(t, live, stored.KeyHash)

	purged, err = repos.IdempotencyRepo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
