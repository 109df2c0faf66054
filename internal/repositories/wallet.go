package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

const walletColumns = `wallet_id, user_id, currency, account_type, balance, created_at, updated_at`

// WalletRepository reads and mutates wallet rows.
type WalletRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewWalletRepository(db *sqlx.DB, txGetter TxGetter) *WalletRepository {
	return &WalletRepository{db: db, txGetter: txGetter}
}

// Create inserts a wallet with a zero balance.
func (r *WalletRepository) Create(ctx context.Context, w *models.Wallet) error {
	query := `
		INSERT INTO wallets (wallet_id, user_id, currency, account_type, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, NOW(), NOW())
		RETURNING ` + walletColumns

	args := []any{w.WalletID, w.UserID, w.Currency, w.AccountType}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), w, query, args...)
	logQuery(query, args, w.WalletID, err)

	if xerrors.IsUniqueViolation(err) {
		return xerrors.ErrWalletExists
	}
	return err
}

// GetByID returns a wallet without locking it.
func (r *WalletRepository) GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1`

	var w models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &w, query, walletID)
	logQuery(query, []any{walletID}, w.Balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, walletID)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListByUser returns every wallet owned by userID.
func (r *WalletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at`

	wallets := []models.Wallet{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &wallets, query, userID)
	logQuery(query, []any{userID}, len(wallets), err)

	return wallets, err
}

// GetForUpdate locks the given wallets with SELECT ... FOR UPDATE in
// ascending id order, so two movements touching the same pair of wallets
// always acquire the locks in the same order. Must run inside a transaction.
func (r *WalletRepository) GetForUpdate(ctx context.Context, walletIDs ...uuid.UUID) (map[uuid.UUID]*models.Wallet, error) {
	var tx *sqlx.Tx
	if r.txGetter != nil {
		tx = r.txGetter(ctx)
	}
	if tx == nil {
		return nil, errors.New("wallet lock requires a transaction")
	}

	ids := slices.Clone(walletIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1 FOR UPDATE`

	locked := make(map[uuid.UUID]*models.Wallet, len(ids))
	for _, id := range ids {
		var w models.Wallet
		err := tx.GetContext(ctx, &w, query, id)
		logQuery(query, []any{id}, w.Balance, err)

		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		locked[id] = &w
	}
	return locked, nil
}

// Debit subtracts amount if the balance covers it and returns the new balance.
func (r *WalletRepository) Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE wallet_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance decimal.Decimal
	args := []any{walletID, amount}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, args...)
	logQuery(query, args, balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: wallet %s", xerrors.ErrInsufficientFunds, walletID)
	}
	return balance, err
}

// Credit adds amount and returns the new balance.
func (r *WalletRepository) Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE wallet_id = $1
		RETURNING balance
	`

	var balance decimal.Decimal
	args := []any{walletID, amount}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, args...)
	logQuery(query, args, balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, walletID)
	}
	return balance, err
}
