package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

func newSQLMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func walletRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"wallet_id", "user_id", "currency", "account_type", "balance", "created_at", "updated_at"})
}

func TestWalletRepository_Debit(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewWalletRepository(db, nil)
	walletID := uuid.New()

	t.Run("covered", func(t *testing.T) {
		mock.ExpectQuery("UPDATE wallets").
			WithArgs(walletID, "10.5").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("89.50"))

		balance, err := repo.Debit(context.Background(), walletID, decimal.RequireFromString("10.5"))
		assert.NoError(t, err)
		assert.Equal(t, "89.5", balance.String())
	})

	t.Run("not covered", func(t *testing.T) {
		mock.ExpectQuery("UPDATE wallets").
			WithArgs(walletID, "500").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Debit(context.Background(), walletID, decimal.NewFromInt(500))
		assert.ErrorIs(t, err, xerrors.ErrInsufficientFunds)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_CreateDuplicate(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewWalletRepository(db, nil)

	mock.ExpectQuery("INSERT INTO wallets").
		WillReturnError(&pgconn.PgError{Code: xerrors.PGUniqueViolation})

	err := repo.Create(context.Background(), &models.Wallet{
		WalletID: uuid.New(), UserID: uuid.New(), Currency: "USD", AccountType: models.AccountSavings,
	})
	assert.ErrorIs(t, err, xerrors.ErrWalletExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_GetByIDMissing(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewWalletRepository(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM wallets WHERE wallet_id").WillReturnRows(walletRows())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, xerrors.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepository_GetForUpdate(t *testing.T) {
	t.Run("requires transaction", func(t *testing.T) {
		db, _ := newSQLMock(t)
		repo := NewWalletRepository(db, nil)

		_, err := repo.GetForUpdate(context.Background(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("locks in ascending id order", func(t *testing.T) {
		db, mock := newSQLMock(t)
		a, b := uuid.New(), uuid.New()
		low, high := a, b
		if bytes.Compare(a[:], b[:]) > 0 {
			low, high = b, a
		}
		user := uuid.New()
		now := time.Now()

		mock.ExpectBegin()
		tx, err := db.Beginx()
		require.NoError(t, err)

		mock.ExpectQuery("FOR UPDATE").WithArgs(low).
			WillReturnRows(walletRows().AddRow(low.String(), user.String(), "USD", "savings", "10.00", now, now))
		mock.ExpectQuery("FOR UPDATE").WithArgs(high).
			WillReturnRows(walletRows().AddRow(high.String(), user.String(), "EUR", "savings", "20.00", now, now))

		repo := NewWalletRepository(db, func(context.Context) *sqlx.Tx { return tx })
		locked, err := repo.GetForUpdate(context.Background(), high, low, high)
		require.NoError(t, err)
		assert.Len(t, locked, 2)
		assert.Equal(t, "EUR", locked[high].Currency)
		assert.True(t, decimal.NewFromInt(10).Equal(locked[low].Balance))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionRepository(db, nil)
	created := time.Now()

	txn := &models.Transaction{
		TransactionID:  uuid.New(),
		SenderWalletID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Amount:         decimal.NewFromInt(100),
		Currency:       "USD",
		Type:           models.TypePayment,
		Status:         models.StatusCompleted,
		Kind:           models.KindBillPayment,
		Channel:        models.ChannelWallet,
		Reference:      "TXN_1",
	}

	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	require.NoError(t, repo.Create(context.Background(), txn))
	assert.Equal(t, created, txn.CreatedAt)
	assert.NotNil(t, txn.Metadata)

	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(&pgconn.PgError{Code: xerrors.PGUniqueViolation})
	err := repo.Create(context.Background(), txn)
	assert.ErrorIs(t, err, xerrors.ErrDuplicateReference)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_UpdateStatus(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionRepository(db, nil)
	id := uuid.New()

	t.Run("applied", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions").
			WithArgs(id, "completed", "refunded", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), id, models.StatusUpdate{From: models.StatusCompleted, To: models.StatusRefunded})
		assert.NoError(t, err)
	})

	t.Run("row moved on", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), id, models.StatusUpdate{From: models.StatusCompleted, To: models.StatusRefunded})
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})

	t.Run("illegal transition never reaches the database", func(t *testing.T) {
		err := repo.UpdateStatus(context.Background(), id, models.StatusUpdate{From: models.StatusFailed, To: models.StatusCompleted})
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyRepository_Rates(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewCurrencyRepository(db, nil)

	mock.ExpectQuery("FROM currency_conversions").WithArgs("USD", "EUR").
		WillReturnRows(sqlmock.NewRows([]string{"rate"}).AddRow("0.9"))
	rate, err := repo.GetDirectRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.9", rate.String())

	mock.ExpectQuery("FROM currency_conversions").WithArgs("USD", "JPY").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetDirectRate(context.Background(), "USD", "JPY")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	mock.ExpectQuery("FROM currencies").WithArgs("XYZ").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetRateToUSD(context.Background(), "XYZ")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	mock.ExpectExec("INSERT INTO currencies").WithArgs("EUR", "1.1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO currencies").WithArgs("INR", "0.012").WillReturnResult(sqlmock.NewResult(0, 1))
	err = repo.UpsertRatesToUSD(context.Background(), map[string]decimal.Decimal{
		"INR": decimal.RequireFromString("0.012"),
		"EUR": decimal.RequireFromString("1.1"),
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_GetMissing(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewRecordRepository(db, nil)

	mock.ExpectQuery("FROM payment_records").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, xerrors.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
