package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

const recordColumns = `record_id, user_id, kind, counterparty_ref, amount, currency, status,
	transaction_id, metadata, created_at, updated_at`

// RecordRepository persists domain payment records.
type RecordRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecordRepository(db *sqlx.DB, txGetter TxGetter) *RecordRepository {
	return &RecordRepository{db: db, txGetter: txGetter}
}

func (r *RecordRepository) Create(ctx context.Context, rec *models.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if rec.Metadata == nil {
		rec.Metadata = models.Metadata{}
	}
	args := []any{
		rec.RecordID, rec.UserID, rec.Kind, rec.CounterpartyRef, rec.Amount, rec.Currency,
		rec.Status, rec.TransactionID, rec.Metadata,
	}
	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&rec.CreatedAt, &rec.UpdatedAt)
	logQuery(query, args, rec.RecordID, err)

	return err
}

func (r *RecordRepository) get(ctx context.Context, query string, recordID uuid.UUID) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &rec, query, recordID)
	logQuery(query, []any{recordID}, rec.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrRecordNotFound, recordID)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*models.PaymentRecord, error) {
	return r.get(ctx, `SELECT `+recordColumns+` FROM payment_records WHERE record_id = $1`, recordID)
}

// UpdateStatusByTransaction sets the status of the record linked to transactionID.
// It is a no-op for movements without a record.
func (r *RecordRepository) UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status models.RecordStatus) error {
	query := `
		UPDATE payment_records
		SET status = $2, updated_at = NOW()
		WHERE transaction_id = $1
	`

	args := []any{transactionID, status}
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var affected int64
	if err == nil {
		affected, err = res.RowsAffected()
	}
	logQuery(query, args, affected, err)

	return err
}

// ListByUser returns the records of userID, newest first.
func (r *RecordRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PaymentRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM payment_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	records := []models.PaymentRecord{}
	args := []any{userID, limit, offset}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &records, query, args...)
	logQuery(query, args, len(records), err)

	return records, err
}
