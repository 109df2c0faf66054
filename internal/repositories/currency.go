package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

// CurrencyRepository reads conversion data: direct pair rates and per
// currency USD rates.
type CurrencyRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCurrencyRepository(db *sqlx.DB, txGetter TxGetter) *CurrencyRepository {
	return &CurrencyRepository{db: db, txGetter: txGetter}
}

// GetDirectRate returns the stored base->target rate.
func (r *CurrencyRepository) GetDirectRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	query := `
		SELECT rate FROM currency_conversions
		WHERE base_currency = $1 AND target_currency = $2
	`

	var rate decimal.Decimal
	args := []any{base, target}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &rate, query, args...)
	logQuery(query, args, rate, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: rate %s->%s", xerrors.ErrNotFound, base, target)
	}
	return rate, err
}

// GetRateToUSD returns how many USD one unit of code is worth.
func (r *CurrencyRepository) GetRateToUSD(ctx context.Context, code string) (decimal.Decimal, error) {
	query := `SELECT rate_to_usd FROM currencies WHERE code = $1`

	var rate decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &rate, query, code)
	logQuery(query, []any{code}, rate, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: currency %s", xerrors.ErrNotFound, code)
	}
	return rate, err
}

// UpsertDirectRate stores a base->target pair rate.
func (r *CurrencyRepository) UpsertDirectRate(ctx context.Context, base, target string, rate decimal.Decimal) error {
	query := `
		INSERT INTO currency_conversions (base_currency, target_currency, rate, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (base_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
	`

	args := []any{base, target, rate}
	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, "ok", err)

	return err
}

// UpsertRatesToUSD stores the USD rate of every currency in rates.
func (r *CurrencyRepository) UpsertRatesToUSD(ctx context.Context, rates map[string]decimal.Decimal) error {
	query := `
		INSERT INTO currencies (code, rate_to_usd, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (code)
		DO UPDATE SET rate_to_usd = EXCLUDED.rate_to_usd, updated_at = NOW()
	`

	exec := executor(ctx, r.db, r.txGetter)
	for _, code := range slices.Sorted(maps.Keys(rates)) {
		args := []any{code, rates[code]}
		_, err := exec.ExecContext(ctx, query, args...)
		logQuery(query, args, "ok", err)
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns every known currency.
func (r *CurrencyRepository) List(ctx context.Context) ([]models.Currency, error) {
	query := `SELECT code, name, rate_to_usd, updated_at FROM currencies ORDER BY code`

	currencies := []models.Currency{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &currencies, query)
	logQuery(query, nil, len(currencies), err)

	return currencies, err
}
