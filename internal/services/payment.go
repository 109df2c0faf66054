package services

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

// MovementExecutor runs money movements.
type MovementExecutor interface {
	ExecuteMovement(ctx context.Context, spec MovementSpec) (*MovementResult, error)
	ConfirmMovement(ctx context.Context, transactionID uuid.UUID, outcome GatewayOutcome, onSettled TransactionHook) (*MovementResult, error)
	ReverseMovement(ctx context.Context, transactionID uuid.UUID, requester Requester, opts ...ReverseOption) (*MovementResult, error)
}

// RecordStore persists the domain records movements settle.
type RecordStore interface {
	Create(ctx context.Context, rec *models.PaymentRecord) error
	GetByID(ctx context.Context, recordID uuid.UUID) (*models.PaymentRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PaymentRecord, error)
	UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status models.RecordStatus) error
}

// PaymentService maps resource payments onto money movements and keeps the
// linked domain record in step with the transaction.
type PaymentService struct {
	engine  MovementExecutor
	records RecordStore
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(engine MovementExecutor, records RecordStore) *PaymentService {
	return &PaymentService{engine: engine, records: records}
}

// Pay settles a bill, recharge, loan installment, investment, tax, premium,
// invoice or card payment and stores its record in the same unit of work.
// A replayed request returns no record.
func (s *PaymentService) Pay(
	ctx context.Context,
	userID uuid.UUID,
	kind models.OperationKind,
	req models.PaymentRequest,
) (*MovementResult, *models.PaymentRecord, error) {
	if !kind.IsPayable() {
		return nil, nil, fmt.Errorf("%w: %q is not a payment kind", xerrors.ErrInvalidMovement, kind)
	}
	if strings.TrimSpace(req.CounterpartyRef) == "" {
		return nil, nil, fmt.Errorf("%w: counterparty_ref is required", xerrors.ErrInvalidMovement)
	}

	var record *models.PaymentRecord
	spec := MovementSpec{
		RequesterID:         userID,
		Kind:                kind,
		SourceWalletID:      req.SourceWalletID,
		DestinationWalletID: req.DestinationWalletID,
		Amount:              req.Amount,
		Currency:            req.Currency,
		TargetCurrency:      req.TargetCurrency,
		IdempotencyKey:      req.IdempotencyKey,
		Description:         req.Description,
		Metadata:            req.Metadata,
		OnCommit: func(ctx context.Context, txn *models.Transaction) error {
			record = newRecord(userID, kind, req.CounterpartyRef, txn, req.Metadata)
			return s.records.Create(ctx, record)
		},
	}

	result, err := s.engine.ExecuteMovement(ctx, spec)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Infow("payment executed", "kind", kind, "counterparty", req.CounterpartyRef, "transaction_id", result.Transaction.TransactionID)
	return result, record, nil
}

// Payout withdraws to a bank account. The wallet is debited now and the
// transaction stays pending until Settle.
func (s *PaymentService) Payout(ctx context.Context, userID uuid.UUID, req models.PayoutRequest) (*MovementResult, *models.PaymentRecord, error) {
	if strings.TrimSpace(req.BankAccount) == "" {
		return nil, nil, fmt.Errorf("%w: bank_account is required", xerrors.ErrInvalidMovement)
	}

	sourceID := req.SourceWalletID
	var record *models.PaymentRecord
	spec := MovementSpec{
		RequesterID:    userID,
		Kind:           models.KindPayout,
		SourceWalletID: &sourceID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		TargetCurrency: req.TargetCurrency,
		IdempotencyKey: req.IdempotencyKey,
		Description:    "payout to " + req.BankAccount,
		Pending:        true,
		OnCommit: func(ctx context.Context, txn *models.Transaction) error {
			record = newRecord(userID, models.KindPayout, req.BankAccount, txn, nil)
			return s.records.Create(ctx, record)
		},
	}

	result, err := s.engine.ExecuteMovement(ctx, spec)
	if err != nil {
		return nil, nil, err
	}
	return result, record, nil
}

// Settle applies the gateway outcome of a pending payout to the transaction
// and its record.
func (s *PaymentService) Settle(ctx context.Context, transactionID uuid.UUID, outcome GatewayOutcome) (*MovementResult, error) {
	status := models.RecordCompleted
	if !outcome.Success {
		status = models.RecordFailed
	}
	return s.engine.ConfirmMovement(ctx, transactionID, outcome, func(ctx context.Context, txn *models.Transaction) error {
		return s.records.UpdateStatusByTransaction(ctx, txn.TransactionID, status)
	})
}

// Cancel reverses the movement behind a record and moves the record to its
// reversed status (cancelled, unpaid or refunded).
func (s *PaymentService) Cancel(ctx context.Context, recordID uuid.UUID, requester Requester) (*MovementResult, *models.PaymentRecord, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	if !requester.IsAdmin && record.UserID != requester.UserID {
		return nil, nil, fmt.Errorf("%w: record %s", xerrors.ErrForbidden, recordID)
	}
	if !record.TransactionID.Valid {
		return nil, nil, fmt.Errorf("%w: record %s has no transaction", xerrors.ErrNotReversible, recordID)
	}

	result, err := s.Reverse(ctx, record.TransactionID.UUID, requester)
	if err != nil {
		return nil, nil, err
	}
	record.Status = models.ReversedStatus(record.Kind)
	return result, record, nil
}

// Reverse reverses any completed movement and flips its record if it has one.
func (s *PaymentService) Reverse(ctx context.Context, transactionID uuid.UUID, requester Requester) (*MovementResult, error) {
	return s.engine.ReverseMovement(ctx, transactionID, requester, OnReversed(
		func(ctx context.Context, txn *models.Transaction) error {
			err := s.records.UpdateStatusByTransaction(ctx, txn.TransactionID, models.ReversedStatus(txn.Kind))
			if errors.Is(err, xerrors.ErrRecordNotFound) {
				return nil
			}
			return err
		},
	))
}

// ListRecords pages through the caller's payment records, newest first.
func (s *PaymentService) ListRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PaymentRecord, int, int, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)
	offset = max(offset, 0)

	records, err := s.records.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list payment records", "userID", userID, "error", err)
		return nil, 0, 0, err
	}
	return records, limit, offset, nil
}

func newRecord(
	userID uuid.UUID,
	kind models.OperationKind,
	counterparty string,
	txn *models.Transaction,
	metadata models.Metadata,
) *models.PaymentRecord {
	status := models.SettledStatus(kind)
	if txn.Status == models.StatusPending {
		status = models.RecordPending
	}
	if metadata == nil {
		metadata = models.Metadata{}
	}
	return &models.PaymentRecord{
		RecordID:        uuid.New(),
		UserID:          userID,
		Kind:            kind,
		CounterpartyRef: counterparty,
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		Status:          status,
		TransactionID:   uuid.NullUUID{UUID: txn.TransactionID, Valid: true},
		Metadata:        metadata,
	}
}
