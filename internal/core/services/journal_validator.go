package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// entryValidator implements the EntryValidatorSvc interface
type entryValidator struct {
	BaseService
	accountRepo             portsrepo.AccountReader
	journalRepo             portsrepo.JournalReader
	rejectDuplicateAccounts bool
}

// EntryValidatorOption is a functional option for configuring the entry validator
type EntryValidatorOption func(*entryValidator)

// WithValidatorClock overrides the clock that defines "today" for date checks.
func WithValidatorClock(now func() time.Time) EntryValidatorOption {
	return func(v *entryValidator) {
		v.Now = now
	}
}

// WithDuplicateAccountRule toggles rejection of entries that reference the
// same account on more than one line.
func WithDuplicateAccountRule(reject bool) EntryValidatorOption {
	return func(v *entryValidator) {
		v.rejectDuplicateAccounts = reject
	}
}

// NewEntryValidator creates a new entry validator with the provided options
func NewEntryValidator(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, options ...EntryValidatorOption) portssvc.EntryValidatorSvc {
	v := &entryValidator{
		accountRepo:             accountRepo,
		journalRepo:             journalRepo,
		rejectDuplicateAccounts: true,
	}

	for _, option := range options {
		option(v)
	}

	return v
}

var _ portssvc.EntryValidatorSvc = (*entryValidator)(nil)

// Validate applies the entry rules in order and stops at the first violation.
func (v *entryValidator) Validate(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.NormalizedEntry, error) {
	dateStr := strings.TrimSpace(req.Date)
	narration := strings.TrimSpace(req.Narration)
	if dateStr == "" || narration == "" || len(req.Lines) < 2 {
		return nil, apperrors.NewValidationError("date, narration and at least 2 lines are required")
	}
	if len(req.Lines) > domain.MaxLinesPerEntry {
		return nil, apperrors.NewValidationError(fmt.Sprintf("an entry may have at most %d lines", domain.MaxLinesPerEntry)).
			WithDetail("lines", len(req.Lines))
	}

	date, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be a valid calendar date in YYYY-MM-DD format").
			WithDetail("date", dateStr)
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return nil, apperrors.NewValidationError("date must not be in the future").
			WithDetail("date", dateStr).
			WithDetail("today", today.Format(domain.DateLayout))
	}

	byCode, err := v.lookupCodes(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	firstLine := make(map[int64]int, len(req.Lines))
	accountOrder := make([]int64, 0, len(req.Lines))
	var debitSum, creditSum int64

	for i, l := range req.Lines {
		n := i + 1

		accountID, label, err := resolveLineAccount(n, l, byCode)
		if err != nil {
			return nil, err
		}
		debit, err := lineAmount(n, "debit_cents", l.DebitCents, "debit", l.Debit)
		if err != nil {
			return nil, err
		}
		credit, err := lineAmount(n, "credit_cents", l.CreditCents, "credit", l.Credit)
		if err != nil {
			return nil, err
		}

		line := domain.JournalLine{
			AccountID:   accountID,
			DebitCents:  debit,
			CreditCents: credit,
			LineIndex:   n,
		}
		if err := line.Validate(); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d: %s", n, err)).
				WithDetail("line", n)
		}

		if first, dup := firstLine[accountID]; dup {
			if v.rejectDuplicateAccounts {
				return nil, apperrors.NewValidationError(fmt.Sprintf("account %s must only appear once per entry", label)).
					WithDetail("lines", []int{first, n})
			}
		} else {
			firstLine[accountID] = n
			accountOrder = append(accountOrder, accountID)
		}

		if debit > math.MaxInt64-debitSum || credit > math.MaxInt64-creditSum {
			return nil, apperrors.NewValidationError("entry totals exceed the supported amount range").
				WithDetail("line", n)
		}
		debitSum += debit
		creditSum += credit
		lines = append(lines, line)
	}

	if debitSum != creditSum {
		return nil, apperrors.NewValidationError("Debits and credits must balance").
			WithDetail("debits", debitSum).
			WithDetail("credits", creditSum)
	}

	if err := v.verifyAccounts(ctx, accountOrder); err != nil {
		return nil, err
	}

	if req.ReversesEntryID != nil {
		if err := v.verifyReversal(ctx, *req.ReversesEntryID); err != nil {
			return nil, err
		}
	}

	return &domain.NormalizedEntry{
		Date:            date,
		Narration:       narration,
		ReversesEntryID: req.ReversesEntryID,
		Lines:           lines,
		TotalDebits:     debitSum,
		TotalCredits:    creditSum,
	}, nil
}

// lookupCodes resolves every account_code in one query.
func (v *entryValidator) lookupCodes(ctx context.Context, lines []dto.JournalLineRequest) (map[string]domain.Account, error) {
	seen := make(map[string]struct{})
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.AccountCode == nil {
			continue
		}
		code := strings.TrimSpace(*l.AccountCode)
		if _, ok := seen[code]; code == "" || ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	byCode, err := v.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		v.LogError(ctx, err, "Failed to resolve account codes", slog.Int("code_count", len(codes)))
		return nil, err
	}
	return byCode, nil
}

// verifyAccounts re-checks the de-duplicated account set and reports every
// missing id at once.
func (v *entryValidator) verifyAccounts(ctx context.Context, accountIDs []int64) error {
	found, err := v.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		v.LogError(ctx, err, "Failed to verify accounts", slog.Int("account_count", len(accountIDs)))
		return err
	}

	var missing []int64
	for _, id := range accountIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	ids := make([]string, len(missing))
	for i, id := range missing {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return apperrors.NewValidationError("Invalid account_id(s): "+strings.Join(ids, ",")).
		WithDetail("account_ids", missing)
}

func (v *entryValidator) verifyReversal(ctx context.Context, entryID int64) error {
	if entryID <= 0 {
		return apperrors.NewValidationError("reverses_entry_id must be a positive integer").
			WithDetail("reverses_entry_id", entryID)
	}
	exists, err := v.journalRepo.EntryExists(ctx, entryID)
	if err != nil {
		v.LogError(ctx, err, "Failed to check reversed entry", slog.Int64("reverses_entry_id", entryID))
		return err
	}
	if !exists {
		return apperrors.NewValidationError(fmt.Sprintf("reverses_entry_id %d does not reference an existing entry", entryID)).
			WithDetail("reverses_entry_id", entryID)
	}
	return nil
}

// resolveLineAccount returns the account id for line n and a label for messages.
// Unknown codes fail here; unknown ids are caught by verifyAccounts.
func resolveLineAccount(n int, l dto.JournalLineRequest, byCode map[string]domain.Account) (int64, string, error) {
	code := ""
	if l.AccountCode != nil {
		code = strings.TrimSpace(*l.AccountCode)
	}
	if l.AccountID == nil && code == "" {
		return 0, "", apperrors.NewValidationError(fmt.Sprintf("line %d: account_id or account_code is required", n)).
			WithDetail("line", n)
	}

	if code != "" {
		acc, ok := byCode[code]
		if !ok {
			return 0, "", apperrors.NewValidationError(fmt.Sprintf("line %d: unknown account_code %s", n, code)).
				WithDetail("line", n).
				WithDetail("account_code", code)
		}
		if l.AccountID != nil && *l.AccountID != acc.AccountID {
			return 0, "", apperrors.NewValidationError(fmt.Sprintf("line %d: account_id %d does not match account_code %s", n, *l.AccountID, code)).
				WithDetail("line", n)
		}
		return acc.AccountID, acc.Code, nil
	}

	if *l.AccountID <= 0 {
		return 0, "", apperrors.NewValidationError(fmt.Sprintf("line %d: account_id must be a positive integer", n)).
			WithDetail("line", n)
	}
	return *l.AccountID, strconv.FormatInt(*l.AccountID, 10), nil
}

// lineAmount reads one side of line n from its canonical field or its alias.
// A missing amount is zero.
func lineAmount(n int, name string, value *decimal.Decimal, aliasName string, alias *decimal.Decimal) (int64, error) {
	amount := value
	if amount == nil {
		amount, name = alias, aliasName
	} else if alias != nil && !alias.Equal(*value) {
		return 0, apperrors.NewValidationError(fmt.Sprintf("line %d: %s and %s disagree", n, name, aliasName)).
			WithDetail("line", n)
	}
	if amount == nil {
		return 0, nil
	}

	switch {
	case !amount.IsInteger():
		return 0, apperrors.NewValidationError(fmt.Sprintf("line %d: %s must be an integer amount of minor units", n, name)).
			WithDetail("line", n).
			WithDetail(name, amount.String())
	case amount.IsNegative():
		return 0, apperrors.NewValidationError(fmt.Sprintf("line %d: %s must not be negative", n, name)).
			WithDetail("line", n).
			WithDetail(name, amount.String())
	case amount.GreaterThan(maxCents):
		return 0, apperrors.NewValidationError(fmt.Sprintf("line %d: %s exceeds the supported amount range", n, name)).
			WithDetail("line", n)
	}
	return amount.IntPart(), nil
}
