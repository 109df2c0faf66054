package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
)

// Requester is the authenticated caller of an operation.
type Requester struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type reverseOptions struct {
	onReversed TransactionHook
}

// ReverseOption configures ReverseMovement.
type ReverseOption func(*reverseOptions)

// OnReversed runs h with the original transaction inside the reversal's
// unit of work, after it has been marked refunded.
func OnReversed(h TransactionHook) ReverseOption {
	return func(o *reverseOptions) {
		o.onReversed = h
	}
}

// ReverseMovement undoes a completed movement by recording a linked refund
// transaction. The payer gets back the principal, plus the original fees
// when the reversal rule refunds them, minus the flat reversal fee.
func (e *MovementEngine) ReverseMovement(
	ctx context.Context,
	transactionID uuid.UUID,
	requester Requester,
	opts ...ReverseOption,
) (*MovementResult, error) {
	var o reverseOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		result        *MovementResult
		gatewayRefund *models.GatewayReceipt
	)
	err := e.uow.Do(ctx, func(ctx context.Context) error {
		r, err := e.reverse(ctx, transactionID, requester, o, &gatewayRefund)
		result = r
		return err
	})
	if err != nil {
		if gatewayRefund != nil {
			logger.Log.Errorw("card refunded but ledger reversal failed, manual reconciliation required",
				"transaction_id", transactionID,
				"refund_id", gatewayRefund.ExternalID,
				"error", err,
			)
			return nil, fmt.Errorf("%w: card refund %s issued but reversal failed: %w",
				xerrors.ErrInvariantViolation, gatewayRefund.ExternalID, err)
		}
		logger.Log.Errorw("failed to reverse movement", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	e.publish(ctx, models.EventTransactionRefunded, result.Transaction, result.Fees)

	logger.Log.Infow("movement reversed",
		"transaction_id", transactionID,
		"refund_transaction_id", result.Transaction.TransactionID,
		"refunded", result.CreditedAmount,
	)
	return result, nil
}

// reverse runs inside the unit of work. gatewayRefund survives retries so
// the card is refunded at most once.
func (e *MovementEngine) reverse(
	ctx context.Context,
	transactionID uuid.UUID,
	requester Requester,
	o reverseOptions,
	gatewayRefund **models.GatewayReceipt,
) (*MovementResult, error) {
	orig, err := e.txs.GetForUpdate(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if orig.Type == models.TypeRefund {
		return nil, fmt.Errorf("%w: %s is itself a refund", xerrors.ErrNotReversible, orig.TransactionID)
	}
	switch orig.Status {
	case models.StatusCompleted:
	case models.StatusRefunded:
		return nil, fmt.Errorf("%w: %s", xerrors.ErrAlreadyReversed, orig.TransactionID)
	default:
		return nil, fmt.Errorf("%w: %s is %s", xerrors.ErrNotReversible, orig.TransactionID, orig.Status)
	}

	// The payer is whoever funded the movement: the sender, or for inbound
	// movements the wallet that was credited.
	payerID := orig.SenderWalletID
	if !payerID.Valid {
		payerID = orig.ReceiverWalletID
	}
	if !payerID.Valid {
		return nil, fmt.Errorf("%w: %s has no wallet", xerrors.ErrNotReversible, orig.TransactionID)
	}

	var ids []uuid.UUID
	if orig.SenderWalletID.Valid {
		ids = append(ids, orig.SenderWalletID.UUID)
	}
	if orig.ReceiverWalletID.Valid {
		ids = append(ids, orig.ReceiverWalletID.UUID)
	}
	locked, err := e.wallets.GetForUpdate(ctx, ids...)
	if err != nil {
		return nil, err
	}
	payer, ok := locked[payerID.UUID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, payerID.UUID)
	}
	if !requester.IsAdmin && payer.UserID != requester.UserID {
		return nil, fmt.Errorf("%w: transaction %s", xerrors.ErrForbidden, orig.TransactionID)
	}

	origFees, err := e.feeStore.ListByTransaction(ctx, orig.TransactionID)
	if err != nil {
		return nil, err
	}
	paidFees := feeTotal(origFees)

	rule := e.policy.Reversal(orig.Kind, orig.Channel)
	inbound := !orig.SenderWalletID.Valid

	refundable := orig.Amount
	if inbound {
		refundable = refundable.Sub(paidFees)
	}
	if rule.RefundFees {
		refundable = refundable.Add(paidFees)
	}
	refundable = refundable.Sub(rule.FlatFee)
	if !refundable.IsPositive() {
		return nil, fmt.Errorf("%w: reversal fee %s leaves nothing to refund", xerrors.ErrNotReversible, rule.FlatFee)
	}

	converted := metaDecimal(orig.Metadata, models.MetaConvertedAmount, orig.Amount)
	result := &MovementResult{
		CreditedAmount: refundable,
		Rate:           metaDecimal(orig.Metadata, models.MetaConversionRate, decimal.NewFromInt(1)),
	}

	// Take back what the internal counterparty received.
	if orig.ReceiverWalletID.Valid {
		receiver, ok := locked[orig.ReceiverWalletID.UUID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", xerrors.ErrWalletNotFound, orig.ReceiverWalletID.UUID)
		}
		if receiver.Balance.LessThan(converted) {
			return nil, fmt.Errorf("%w: wallet %s holds %s, reversal needs %s",
				xerrors.ErrInsufficientFunds, receiver.WalletID, receiver.Balance, converted)
		}
		balance, err := e.debit(ctx, receiver, converted)
		if err != nil {
			return nil, err
		}
		result.TotalDebit = converted
		result.DestinationBalance = decimal.NewNullDecimal(balance)
	}

	if !inbound {
		balance, err := e.credit(ctx, payer, refundable)
		if err != nil {
			return nil, err
		}
		result.SourceBalance = decimal.NewNullDecimal(balance)
	}

	metadata := models.Metadata{
		models.MetaOriginalTransaction: orig.TransactionID.String(),
		models.MetaConvertedAmount:     converted.StringFixed(2),
	}

	if inbound && orig.Channel == models.ChannelCard && orig.ExternalID != "" {
		if *gatewayRefund == nil {
			if e.gateway == nil {
				return nil, fmt.Errorf("%w: no card gateway configured", xerrors.ErrGateway)
			}
			receipt, err := e.gateway.Refund(ctx, orig.ExternalID, refundable, orig.Currency)
			if err != nil {
				return nil, err
			}
			*gatewayRefund = &receipt
		}
		metadata[models.MetaGatewayRefundID] = (*gatewayRefund).ExternalID
	}

	completedAt := e.now()
	refund := &models.Transaction{
		TransactionID:    uuid.New(),
		SenderWalletID:   orig.ReceiverWalletID,
		ReceiverWalletID: orig.SenderWalletID,
		Amount:           refundable,
		Currency:         orig.Currency,
		Type:             models.TypeRefund,
		Status:           models.StatusCompleted,
		Kind:             orig.Kind,
		Channel:          orig.Channel,
		Reference:        newReference("RFND_"),
		Description:      "reversal of " + orig.Reference,
		Metadata:         metadata,
		CompletedAt:      &completedAt,
	}
	if *gatewayRefund != nil {
		refund.ExternalID = (*gatewayRefund).ExternalID
	}
	if err := e.txs.Create(ctx, refund); err != nil {
		return nil, err
	}

	result.Fees = []models.TransactionFee{}
	if rule.FlatFee.IsPositive() {
		fee := models.TransactionFee{
			FeeID:         uuid.New(),
			TransactionID: refund.TransactionID,
			Amount:        rule.FlatFee,
			Currency:      orig.Currency,
			Type:          models.FeeProcessing,
		}
		if err := e.feeStore.Create(ctx, &fee); err != nil {
			return nil, err
		}
		result.Fees = append(result.Fees, fee)
	}

	err = e.txs.UpdateStatus(ctx, orig.TransactionID, models.StatusUpdate{
		From:     models.StatusCompleted,
		To:       models.StatusRefunded,
		Metadata: models.Metadata{models.MetaRefundTransaction: refund.TransactionID.String()},
	})
	if err != nil {
		return nil, err
	}
	orig.Status = models.StatusRefunded

	if o.onReversed != nil {
		if err := o.onReversed(ctx, orig); err != nil {
			return nil, err
		}
	}

	result.Transaction = refund
	return result, nil
}
