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

const transactionColumns = `transaction_id, sender_wallet_id, receiver_wallet_id, amount, currency,
	type, status, kind, channel, reference, description, external_id, metadata, created_at, completed_at`

// TransactionRepository persists ledger transactions.
type TransactionRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionRepository(db *sqlx.DB, txGetter TxGetter) *TransactionRepository {
	return &TransactionRepository{db: db, txGetter: txGetter}
}

// Create inserts t. A reused reference yields ErrDuplicateReference.
func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), $14)
		RETURNING created_at
	`

	if t.Metadata == nil {
		t.Metadata = models.Metadata{}
	}
	args := []any{
		t.TransactionID, t.SenderWalletID, t.ReceiverWalletID, t.Amount, t.Currency,
		t.Type, t.Status, t.Kind, t.Channel, t.Reference, t.Description, t.ExternalID, t.Metadata,
		t.CompletedAt,
	}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &t.CreatedAt, query, args...)
	logQuery(query, args, t.TransactionID, err)

	if xerrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", xerrors.ErrDuplicateReference, t.Reference)
	}
	return err
}

func (r *TransactionRepository) get(ctx context.Context, query string, arg any) (*models.Transaction, error) {
	var t models.Transaction
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &t, query, arg)
	logQuery(query, []any{arg}, t.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrTransactionNotFound, arg)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID returns a transaction by id.
func (r *TransactionRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, transactionID)
}

// GetByReference returns the transaction recorded under reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE reference = $1`, reference)
}

// GetForUpdate locks a transaction row for a status change.
func (r *TransactionRepository) GetForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 FOR UPDATE`, transactionID)
}

// UpdateStatus moves a transaction from u.From to u.To. The row must still
// be in u.From, otherwise ErrInvalidTransition is returned.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, transactionID uuid.UUID, u models.StatusUpdate) error {
	if !u.From.CanTransitionTo(u.To) {
		return fmt.Errorf("%w: %s -> %s", xerrors.ErrInvalidTransition, u.From, u.To)
	}
	if u.Metadata == nil {
		u.Metadata = models.Metadata{}
	}

	query := `
		UPDATE transactions
		SET status = $3,
			external_id = COALESCE(NULLIF($4, ''), external_id),
			metadata = metadata || $5::jsonb,
			completed_at = CASE WHEN $3::text = 'completed' THEN NOW() ELSE completed_at END
		WHERE transaction_id = $1 AND status = $2
	`

	args := []any{transactionID, u.From, u.To, u.ExternalID, u.Metadata}
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var affected int64
	if err == nil {
		affected, err = res.RowsAffected()
	}
	logQuery(query, args, affected, err)

	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s is no longer %s", xerrors.ErrInvalidTransition, transactionID, u.From)
	}
	return nil
}

// ListByWallet returns the transactions a wallet sent or received, oldest first.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sender_wallet_id = $1 OR receiver_wallet_id = $1
		ORDER BY created_at, transaction_id
		LIMIT $2 OFFSET $3
	`

	txs := []models.Transaction{}
	args := []any{walletID, limit, offset}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &txs, query, args...)
	logQuery(query, args, len(txs), err)

	return txs, err
}
