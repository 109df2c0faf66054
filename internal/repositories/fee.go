package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-ledger/internal/models"
)

// FeeRepository persists transaction fees. Fees are insert-only.
type FeeRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFeeRepository(db *sqlx.DB, txGetter TxGetter) *FeeRepository {
	return &FeeRepository{db: db, txGetter: txGetter}
}

func (r *FeeRepository) Create(ctx context.Context, f *models.TransactionFee) error {
	query := `
		INSERT INTO transaction_fees (fee_id, transaction_id, amount, currency, fee_type, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	args := []any{f.FeeID, f.TransactionID, f.Amount, f.Currency, f.Type}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &f.CreatedAt, query, args...)
	logQuery(query, args, f.FeeID, err)

	return err
}

func (r *FeeRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.TransactionFee, error) {
	query := `
		SELECT fee_id, transaction_id, amount, currency, fee_type, created_at
		FROM transaction_fees
		WHERE transaction_id = $1
		ORDER BY created_at, fee_type
	`

	fees := []models.TransactionFee{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &fees, query, transactionID)
	logQuery(query, []any{transactionID}, len(fees), err)

	return fees, err
}
