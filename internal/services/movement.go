package services

//go:generate mockgen -source=movement.go -destination=movement_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/sbilibin2017/gw-ledger/internal/fees"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

// UnitOfWork runs fn atomically.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// WalletStore reads and moves wallet balances.
type WalletStore interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)
	GetForUpdate(ctx context.Context, walletIDs ...uuid.UUID) (map[uuid.UUID]*models.Wallet, error)
	Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// TransactionStore persists ledger transactions.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	GetForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID uuid.UUID, u models.StatusUpdate) error
}

// FeeStore persists transaction fees.
type FeeStore interface {
	Create(ctx context.Context, f *models.TransactionFee) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]models.TransactionFee, error)
}

// RateLookup resolves conversion rates.
type RateLookup interface {
	GetRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

// CardGateway charges and refunds cards.
type CardGateway interface {
	Charge(ctx context.Context, paymentToken string, amount decimal.Decimal, currency string) (models.GatewayReceipt, error)
	Refund(ctx context.Context, externalID string, amount decimal.Decimal, currency string) (models.GatewayReceipt, error)
}

// EventSink receives ledger events after commit.
type EventSink interface {
	Publish(ctx context.Context, event models.LedgerEvent)
}

// TransactionHook runs inside the unit of work of a movement, after the
// ledger rows are written. An error rolls the whole movement back.
type TransactionHook func(ctx context.Context, txn *models.Transaction) error

// MovementSpec describes one money movement.
type MovementSpec struct {
	RequesterID         uuid.UUID
	Kind                models.OperationKind
	SourceWalletID      *uuid.UUID
	DestinationWalletID *uuid.UUID
	Amount              decimal.Decimal
	Currency            string
	TargetCurrency      string // currency of an external counterparty
	IdempotencyKey      string
	Description         string
	Metadata            models.Metadata
	PaymentToken        string // card payment to capture for inbound funding
	Pending             bool   // awaiting gateway confirmation
	OnCommit            TransactionHook
}

// MovementResult is the outcome of a movement, reversal or confirmation.
type MovementResult struct {
	Transaction        *models.Transaction
	Fees               []models.TransactionFee
	TotalDebit         decimal.Decimal
	CreditedAmount     decimal.Decimal
	Rate               decimal.Decimal
	SourceBalance      decimal.NullDecimal
	DestinationBalance decimal.NullDecimal
	Replayed           bool
}

// GatewayOutcome is the asynchronous result of a pending external movement.
type GatewayOutcome struct {
	Success    bool
	ExternalID string
	Reason     string
}

// MovementEngine moves money between wallets and external counterparties.
type MovementEngine struct {
	uow      UnitOfWork
	wallets  WalletStore
	txs      TransactionStore
	feeStore FeeStore
	rates    RateLookup
	gateway  CardGateway
	events   EventSink
	policy   *fees.Policy
	now      func() time.Time
}

// NewMovementEngine creates a MovementEngine. gateway and events may be nil.
func NewMovementEngine(
	uow UnitOfWork,
	wallets WalletStore,
	txs TransactionStore,
	feeStore FeeStore,
	rates RateLookup,
	gateway CardGateway,
	events EventSink,
	policy *fees.Policy,
) *MovementEngine {
	if policy == nil {
		policy = fees.NewPolicy()
	}
	return &MovementEngine{
		uow:      uow,
		wallets:  wallets,
		txs:      txs,
		feeStore: feeStore,
		rates:    rates,
		gateway:  gateway,
		events:   events,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// maxIdempotencyKeyLen keeps scoped references within the reference column.
const maxIdempotencyKeyLen = 64

// movementPlan holds everything computed before the unit of work.
type movementPlan struct {
	source         *models.Wallet
	destination    *models.Wallet
	targetCurrency string
	rate           decimal.Decimal
	breakdown      fees.Breakdown
	totalDebit     decimal.Decimal
	credit         decimal.Decimal
	channel        models.Channel
}

// ExecuteMovement debits the source, credits the destination and records the
// transaction with its fees in a single unit of work.
func (e *MovementEngine) ExecuteMovement(ctx context.Context, spec MovementSpec) (*MovementResult, error) {
	spec.Currency = strings.ToUpper(strings.TrimSpace(spec.Currency))
	spec.TargetCurrency = strings.ToUpper(strings.TrimSpace(spec.TargetCurrency))
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	if spec.IdempotencyKey != "" {
		result, err := e.replay(ctx, spec)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, xerrors.ErrTransactionNotFound) {
			return nil, err
		}
	}

	plan, err := e.plan(ctx, spec)
	if err != nil {
		return nil, err
	}

	var receipt models.GatewayReceipt
	if spec.PaymentToken != "" {
		if e.gateway == nil {
			return nil, fmt.Errorf("%w: no card gateway configured", xerrors.ErrGateway)
		}
		receipt, err = e.gateway.Charge(ctx, spec.PaymentToken, spec.Amount, spec.Currency)
		if err != nil {
			return nil, err
		}
	}

	var result *MovementResult
	err = e.uow.Do(ctx, func(ctx context.Context) error {
		r, err := e.apply(ctx, spec, plan, receipt)
		result = r
		return err
	})
	if err != nil {
		if spec.PaymentToken != "" {
			e.refundCharge(ctx, spec, receipt, err)
		}
		if errors.Is(err, xerrors.ErrDuplicateReference) && spec.IdempotencyKey != "" {
			if replayed, rerr := e.replay(ctx, spec); rerr == nil {
				return replayed, nil
			}
		}
		logger.Log.Errorw("movement failed", "kind", spec.Kind, "amount", spec.Amount, "currency", spec.Currency, "error", err)
		return nil, err
	}

	eventType := models.EventTransactionCompleted
	if result.Transaction.Status == models.StatusPending {
		eventType = models.EventTransactionPending
	}
	e.publish(ctx, eventType, result.Transaction, result.Fees)

	logger.Log.Infow("movement executed",
		"transaction_id", result.Transaction.TransactionID,
		"kind", spec.Kind,
		"total_debit", result.TotalDebit,
		"credited", result.CreditedAmount,
		"rate", result.Rate,
	)
	return result, nil
}

func validateSpec(spec MovementSpec) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", xerrors.ErrInvalidMovement, fmt.Sprintf(format, args...))
	}

	if !spec.Kind.Valid() {
		return invalid("unknown operation kind %q", spec.Kind)
	}
	if !spec.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if !spec.Amount.Equal(spec.Amount.Round(2)) {
		return invalid("amount %s has more than 2 decimal places", spec.Amount)
	}
	if spec.Currency == "" {
		return invalid("currency is required")
	}
	if len(spec.IdempotencyKey) > maxIdempotencyKeyLen {
		return invalid("idempotency key longer than %d characters", maxIdempotencyKeyLen)
	}
	if spec.SourceWalletID == nil && spec.DestinationWalletID == nil {
		return invalid("at least one wallet is required")
	}

	if spec.Kind.IsInbound() {
		if spec.SourceWalletID != nil {
			return invalid("%s takes no source wallet", spec.Kind)
		}
		if spec.DestinationWalletID == nil {
			return invalid("%s requires a destination wallet", spec.Kind)
		}
	} else {
		if spec.SourceWalletID == nil {
			return invalid("%s requires a source wallet", spec.Kind)
		}
		if spec.Kind.NeedsDestination() && spec.DestinationWalletID == nil {
			return invalid("%s requires a destination wallet", spec.Kind)
		}
		if !spec.Kind.NeedsDestination() && spec.DestinationWalletID != nil {
			return invalid("%s takes no destination wallet", spec.Kind)
		}
	}

	if spec.SourceWalletID != nil && spec.DestinationWalletID != nil && *spec.SourceWalletID == *spec.DestinationWalletID {
		return invalid("source and destination wallets must differ")
	}
	if spec.Pending && (spec.Kind.IsInbound() || spec.DestinationWalletID != nil) {
		return invalid("only external outbound movements can be pending")
	}
	if spec.PaymentToken != "" && spec.Kind != models.KindWalletFunding {
		return invalid("payment token is only accepted for wallet funding")
	}
	if spec.Kind == models.KindWalletFunding && spec.PaymentToken == "" {
		return invalid("wallet funding requires a payment token")
	}
	return nil
}

func (e *MovementEngine) plan(ctx context.Context, spec MovementSpec) (*movementPlan, error) {
	p := &movementPlan{
		targetCurrency: spec.Currency,
		rate:           decimal.NewFromInt(1),
		channel:        models.ChannelWallet,
	}
	if spec.PaymentToken != "" {
		p.channel = models.ChannelCard
	}

	if spec.SourceWalletID != nil {
		src, err := e.wallets.GetByID(ctx, *spec.SourceWalletID)
		if err != nil {
			return nil, err
		}
		if src.UserID != spec.RequesterID {
			return nil, fmt.Errorf("%w: wallet %s", xerrors.ErrForbidden, src.WalletID)
		}
		if !strings.EqualFold(src.Currency, spec.Currency) {
			return nil, fmt.Errorf("%w: wallet %s holds %s, movement is in %s",
				xerrors.ErrCurrencyMismatch, src.WalletID, src.Currency, spec.Currency)
		}
		p.source = src
	}

	if spec.DestinationWalletID != nil {
		dst, err := e.wallets.GetByID(ctx, *spec.DestinationWalletID)
		if err != nil {
			return nil, err
		}
		if (spec.Kind == models.KindTransfer || spec.Kind.IsInbound()) && dst.UserID != spec.RequesterID {
			return nil, fmt.Errorf("%w: wallet %s", xerrors.ErrForbidden, dst.WalletID)
		}
		p.destination = dst
		p.targetCurrency = strings.ToUpper(dst.Currency)
	} else if spec.TargetCurrency != "" {
		p.targetCurrency = spec.TargetCurrency
	}

	if p.targetCurrency != spec.Currency {
		rate, err := e.rates.GetRate(ctx, spec.Currency, p.targetCurrency)
		if err != nil {
			return nil, err
		}
		p.rate = rate
	}

	breakdown, err := e.policy.Compute(spec.Kind, spec.Amount, spec.Currency, p.targetCurrency)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xerrors.ErrInvalidMovement, err)
	}
	p.breakdown = breakdown

	if spec.Kind.IsInbound() {
		net := spec.Amount.Sub(breakdown.Total())
		if !net.IsPositive() {
			return nil, fmt.Errorf("%w: fees %s consume the whole amount %s",
				xerrors.ErrInvalidMovement, breakdown.Total(), spec.Amount)
		}
		p.totalDebit = decimal.Zero
		p.credit = net.Mul(p.rate).Round(2)
	} else {
		p.totalDebit = spec.Amount.Add(breakdown.Total())
		p.credit = spec.Amount.Mul(p.rate).Round(2)
	}
	return p, nil
}

func (e *MovementEngine) apply(
	ctx context.Context,
	spec MovementSpec,
	p *movementPlan,
	receipt models.GatewayReceipt,
) (*MovementResult, error) {
	var ids []uuid.UUID
	if p.source != nil {
		ids = append(ids, p.source.WalletID)
	}
	if p.destination != nil {
		ids = append(ids, p.destination.WalletID)
	}
	locked, err := e.wallets.GetForUpdate(ctx, ids...)
	if err != nil {
		return nil, err
	}

	if spec.IdempotencyKey != "" {
		_, err := e.txs.GetByReference(ctx, scopedReference(spec.RequesterID, spec.IdempotencyKey))
		if err == nil {
			return nil, fmt.Errorf("%w: %s", xerrors.ErrDuplicateReference, spec.IdempotencyKey)
		}
		if !errors.Is(err, xerrors.ErrTransactionNotFound) {
			return nil, err
		}
	}

	result := &MovementResult{
		TotalDebit:     p.totalDebit,
		CreditedAmount: p.credit,
		Rate:           p.rate,
	}

	if p.source != nil {
		src, ok := locked[p.source.WalletID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, p.source.WalletID)
		}
		if src.UserID != spec.RequesterID {
			return nil, fmt.Errorf("%w: wallet %s", xerrors.ErrForbidden, src.WalletID)
		}
		if src.Balance.LessThan(p.totalDebit) {
			return nil, fmt.Errorf("%w: wallet %s holds %s, needs %s",
				xerrors.ErrInsufficientFunds, src.WalletID, src.Balance, p.totalDebit)
		}
		balance, err := e.debit(ctx, src, p.totalDebit)
		if err != nil {
			return nil, err
		}
		result.SourceBalance = decimal.NewNullDecimal(balance)
	}

	if p.destination != nil {
		dst, ok := locked[p.destination.WalletID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, p.destination.WalletID)
		}
		balance, err := e.credit(ctx, dst, p.credit)
		if err != nil {
			return nil, err
		}
		result.DestinationBalance = decimal.NewNullDecimal(balance)
	}

	metadata := models.Metadata{}
	maps.Copy(metadata, spec.Metadata)
	metadata[models.MetaConversionRate] = p.rate.String()
	metadata[models.MetaTargetCurrency] = p.targetCurrency
	metadata[models.MetaConvertedAmount] = p.credit.StringFixed(2)

	reference := newReference("TXN_")
	if spec.IdempotencyKey != "" {
		reference = scopedReference(spec.RequesterID, spec.IdempotencyKey)
	}

	txn := &models.Transaction{
		TransactionID: uuid.New(),
		Amount:        spec.Amount,
		Currency:      spec.Currency,
		Type:          spec.Kind.TransactionType(),
		Status:        models.StatusCompleted,
		Kind:          spec.Kind,
		Channel:       p.channel,
		Reference:     reference,
		Description:   spec.Description,
		ExternalID:    receipt.ExternalID,
		Metadata:      metadata,
	}
	if p.source != nil {
		txn.SenderWalletID = uuid.NullUUID{UUID: p.source.WalletID, Valid: true}
	}
	if p.destination != nil {
		txn.ReceiverWalletID = uuid.NullUUID{UUID: p.destination.WalletID, Valid: true}
	}
	if spec.Pending {
		txn.Status = models.StatusPending
	} else {
		completedAt := e.now()
		txn.CompletedAt = &completedAt
	}

	if err := e.txs.Create(ctx, txn); err != nil {
		return nil, err
	}

	feeRows, err := e.recordFees(ctx, txn.TransactionID, spec.Currency, p.breakdown)
	if err != nil {
		return nil, err
	}

	if spec.OnCommit != nil {
		if err := spec.OnCommit(ctx, txn); err != nil {
			return nil, err
		}
	}

	result.Transaction = txn
	result.Fees = feeRows
	return result, nil
}

// debit takes amount from a locked wallet and checks the stored balance
// moved by exactly amount.
func (e *MovementEngine) debit(ctx context.Context, w *models.Wallet, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := e.wallets.Debit(ctx, w.WalletID, amount)
	if err != nil {
		return decimal.Zero, err
	}
	if expected := w.Balance.Sub(amount); !balance.Equal(expected) {
		logger.Log.Errorw("wallet balance drifted during debit", "wallet_id", w.WalletID, "expected", expected, "actual", balance)
		return decimal.Zero, fmt.Errorf("%w: wallet %s balance %s, expected %s",
			xerrors.ErrInvariantViolation, w.WalletID, balance, expected)
	}
	w.Balance = balance
	return balance, nil
}

// credit adds amount to a locked wallet and checks the stored balance.
func (e *MovementEngine) credit(ctx context.Context, w *models.Wallet, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := e.wallets.Credit(ctx, w.WalletID, amount)
	if err != nil {
		return decimal.Zero, err
	}
	if expected := w.Balance.Add(amount); !balance.Equal(expected) {
		logger.Log.Errorw("wallet balance drifted during credit", "wallet_id", w.WalletID, "expected", expected, "actual", balance)
		return decimal.Zero, fmt.Errorf("%w: wallet %s balance %s, expected %s",
			xerrors.ErrInvariantViolation, w.WalletID, balance, expected)
	}
	w.Balance = balance
	return balance, nil
}

// recordFees stores one row per non-zero fee component.
func (e *MovementEngine) recordFees(
	ctx context.Context,
	transactionID uuid.UUID,
	currency string,
	b fees.Breakdown,
) ([]models.TransactionFee, error) {
	components := []struct {
		feeType models.FeeType
		amount  decimal.Decimal
	}{
		{models.FeeProcessing, b.Processing},
		{models.FeeCurrencyConversion, b.Conversion},
	}

	rows := []models.TransactionFee{}
	for _, c := range components {
		if !c.amount.IsPositive() {
			continue
		}
		fee := models.TransactionFee{
			FeeID:         uuid.New(),
			TransactionID: transactionID,
			Amount:        c.amount,
			Currency:      currency,
			Type:          c.feeType,
		}
		if err := e.feeStore.Create(ctx, &fee); err != nil {
			return nil, err
		}
		rows = append(rows, fee)
	}
	return rows, nil
}

// refundCharge returns a captured card payment when the ledger side failed.
func (e *MovementEngine) refundCharge(ctx context.Context, spec MovementSpec, receipt models.GatewayReceipt, cause error) {
	ctx = context.WithoutCancel(ctx)
	refund, err := e.gateway.Refund(ctx, receipt.ExternalID, spec.Amount, spec.Currency)
	if err != nil {
		logger.Log.Errorw("failed to refund captured charge, manual reconciliation required",
			"external_id", receipt.ExternalID,
			"amount", spec.Amount,
			"currency", spec.Currency,
			"cause", cause,
			"error", err,
		)
		return
	}
	logger.Log.Warnw("captured charge refunded after failed movement",
		"external_id", receipt.ExternalID,
		"refund_id", refund.ExternalID,
		"cause", cause,
	)
}

// replay returns the stored result for the requester's spec.IdempotencyKey.
// A key reused for a movement with other parameters or wallets is a conflict.
func (e *MovementEngine) replay(ctx context.Context, spec MovementSpec) (*MovementResult, error) {
	txn, err := e.txs.GetByReference(ctx, scopedReference(spec.RequesterID, spec.IdempotencyKey))
	if err != nil {
		return nil, err
	}
	if txn.Kind != spec.Kind || !txn.Amount.Equal(spec.Amount) || !strings.EqualFold(txn.Currency, spec.Currency) ||
		!sameWallet(txn.SenderWalletID, spec.SourceWalletID) || !sameWallet(txn.ReceiverWalletID, spec.DestinationWalletID) {
		return nil, fmt.Errorf("%w: %s belongs to a different movement", xerrors.ErrDuplicateReference, spec.IdempotencyKey)
	}

	feeRows, err := e.feeStore.ListByTransaction(ctx, txn.TransactionID)
	if err != nil {
		return nil, err
	}

	result := resultFromTransaction(txn, feeRows)
	result.Replayed = true
	logger.Log.Infow("movement replayed", "reference", txn.Reference, "transaction_id", txn.TransactionID)
	return result, nil
}

func resultFromTransaction(txn *models.Transaction, feeRows []models.TransactionFee) *MovementResult {
	result := &MovementResult{
		Transaction:    txn,
		Fees:           feeRows,
		Rate:           metaDecimal(txn.Metadata, models.MetaConversionRate, decimal.NewFromInt(1)),
		CreditedAmount: metaDecimal(txn.Metadata, models.MetaConvertedAmount, txn.Amount),
	}
	if txn.SenderWalletID.Valid {
		result.TotalDebit = txn.Amount.Add(feeTotal(feeRows))
	}
	return result
}

func metaDecimal(m models.Metadata, key string, fallback decimal.Decimal) decimal.Decimal {
	v, ok := m[key]
	if !ok {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}

func feeTotal(rows []models.TransactionFee) decimal.Decimal {
	total := decimal.Zero
	for _, f := range rows {
		total = total.Add(f.Amount)
	}
	return total
}

// scopedReference is the stored reference of a client idempotency key. Keys
// are unique per requester, not globally.
func scopedReference(requesterID uuid.UUID, key string) string {
	return requesterID.String() + "/" + key
}

func sameWallet(stored uuid.NullUUID, requested *uuid.UUID) bool {
	if requested == nil {
		return !stored.Valid
	}
	return stored.Valid && stored.UUID == *requested
}

// newReference returns a sortable unique transaction reference.
func newReference(prefix string) string {
	return prefix + ulid.Make().String()
}

func (e *MovementEngine) publish(ctx context.Context, eventType string, txn *models.Transaction, feeRows []models.TransactionFee) {
	if e.events == nil {
		return
	}
	e.events.Publish(ctx, models.LedgerEvent{
		EventType:        eventType,
		TransactionID:    txn.TransactionID,
		Reference:        txn.Reference,
		Kind:             txn.Kind,
		Type:             txn.Type,
		Status:           txn.Status,
		Amount:           txn.Amount,
		Currency:         txn.Currency,
		FeeTotal:         feeTotal(feeRows),
		SenderWalletID:   txn.SenderWalletID,
		ReceiverWalletID: txn.ReceiverWalletID,
		OccurredAt:       e.now(),
	})
}

// ConfirmMovement settles a pending external movement. On failure the full
// debit, principal plus fees, goes back to the source wallet and the refunded
// fee total is stored under MetaFeesRefunded. Repeating an outcome that was
// already applied is a no-op.
func (e *MovementEngine) ConfirmMovement(
	ctx context.Context,
	transactionID uuid.UUID,
	outcome GatewayOutcome,
	onSettled TransactionHook,
) (*MovementResult, error) {
	target := models.StatusCompleted
	if !outcome.Success {
		target = models.StatusFailed
	}

	var (
		result *MovementResult
		noop   bool
	)
	err := e.uow.Do(ctx, func(ctx context.Context) error {
		noop = false

		txn, err := e.txs.GetForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		feeRows, err := e.feeStore.ListByTransaction(ctx, txn.TransactionID)
		if err != nil {
			return err
		}

		switch txn.Status {
		case target:
			noop = true
			result = resultFromTransaction(txn, feeRows)
			result.Replayed = true
			return nil
		case models.StatusPending:
		default:
			return fmt.Errorf("%w: %s is %s, cannot become %s", xerrors.ErrInvalidTransition, txn.TransactionID, txn.Status, target)
		}

		result = resultFromTransaction(txn, feeRows)

		update := models.StatusUpdate{From: models.StatusPending, To: target, ExternalID: outcome.ExternalID}
		if !outcome.Success {
			update.Metadata = models.Metadata{models.MetaFailureReason: outcome.Reason}

			if txn.SenderWalletID.Valid {
				locked, err := e.wallets.GetForUpdate(ctx, txn.SenderWalletID.UUID)
				if err != nil {
					return err
				}
				src, ok := locked[txn.SenderWalletID.UUID]
				if !ok {
					return fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, txn.SenderWalletID.UUID)
				}
				balance, err := e.credit(ctx, src, result.TotalDebit)
				if err != nil {
					return err
				}
				result.SourceBalance = decimal.NewNullDecimal(balance)
				update.Metadata[models.MetaFeesRefunded] = feeTotal(feeRows).StringFixed(2)
			}
		}

		if err := e.txs.UpdateStatus(ctx, txn.TransactionID, update); err != nil {
			return err
		}

		txn.Status = target
		if outcome.ExternalID != "" {
			txn.ExternalID = outcome.ExternalID
		}
		if txn.Metadata == nil {
			txn.Metadata = models.Metadata{}
		}
		maps.Copy(txn.Metadata, update.Metadata)
		if target == models.StatusCompleted {
			completedAt := e.now()
			txn.CompletedAt = &completedAt
		}

		if onSettled != nil {
			return onSettled(ctx, txn)
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to confirm movement", "transaction_id", transactionID, "success", outcome.Success, "error", err)
		return nil, err
	}
	if noop {
		return result, nil
	}

	eventType, charged := models.EventTransactionCompleted, result.Fees
	if target == models.StatusFailed {
		eventType = models.EventTransactionFailed
		if _, refunded := result.Transaction.Metadata[models.MetaFeesRefunded]; refunded {
			charged = nil
		}
	}
	e.publish(ctx, eventType, result.Transaction, charged)

	logger.Log.Infow("movement confirmed", "transaction_id", transactionID, "status", target, "external_id", outcome.ExternalID)
	return result, nil
}
