package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-ledger/internal/fees"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

// decimalMatcher matches decimals by value, not representation.
type decimalMatcher struct{ want decimal.Decimal }

func decEq(s string) gomock.Matcher { return decimalMatcher{want: decimal.RequireFromString(s)} }

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return fmt.Sprintf("is decimal %s", m.want) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type engineMocks struct {
	uow     *MockUnitOfWork
	wallets *MockWalletStore
	txs     *MockTransactionStore
	fees    *MockFeeStore
	rates   *MockRateLookup
	gateway *MockCardGateway
	events  *MockEventSink
}

func newEngine(t *testing.T, opts ...fees.Option) (*MovementEngine, *engineMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &engineMocks{
		uow:     NewMockUnitOfWork(ctrl),
		wallets: NewMockWalletStore(ctrl),
		txs:     NewMockTransactionStore(ctrl),
		fees:    NewMockFeeStore(ctrl),
		rates:   NewMockRateLookup(ctrl),
		gateway: NewMockCardGateway(ctrl),
		events:  NewMockEventSink(ctrl),
	}
	m.uow.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
	).AnyTimes()

	e := NewMovementEngine(m.uow, m.wallets, m.txs, m.fees, m.rates, m.gateway, m.events, fees.NewPolicy(opts...))
	return e, m
}

func wallet(userID uuid.UUID, currency, balance string) *models.Wallet {
	return &models.Wallet{
		WalletID:    uuid.New(),
		UserID:      userID,
		Currency:    currency,
		AccountType: models.AccountSavings,
		Balance:     dec(balance),
	}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestMovementEngine_BillPayment(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	userID := uuid.New()
	w1 := wallet(userID, "USD", "1000.00")

	var (
		created *models.Transaction
		feeRows []*models.TransactionFee
	)
	m.wallets.EXPECT().GetByID(ctx, w1.WalletID).Return(w1, nil)
	m.wallets.EXPECT().GetForUpdate(gomock.Any(), w1.WalletID).Return(map[uuid.UUID]*models.Wallet{w1.WalletID: {
		WalletID: w1.WalletID, UserID: userID, Currency: "USD", Balance: dec("1000.00"),
	}}, nil)
	m.wallets.EXPECT().Debit(gomock.Any(), w1.WalletID, decEq("101.50")).Return(dec("898.50"), nil)
	m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
		created = txn
		return nil
	})
	m.fees.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f *models.TransactionFee) error {
		feeRows = append(feeRows, f)
		return nil
	})
	m.events.EXPECT().Publish(ctx, gomock.Any()).Do(func(_ context.Context, ev models.LedgerEvent) {
		assert.Equal(t, models.EventTransactionCompleted, ev.EventType)
		assert.True(t, dec("1.50").Equal(ev.FeeTotal))
	})

	result, err := e.ExecuteMovement(ctx, MovementSpec{
		RequesterID:    userID,
		Kind:           models.KindBillPayment,
		SourceWalletID: ptr(w1.WalletID),
		Amount:         dec("100.00"),
		Currency:       "usd",
	})
	require.NoError(t, err)

	assert.Equal(t, "898.50", result.SourceBalance.Decimal.StringFixed(2))
	assert.Equal(t, "101.50", result.TotalDebit.StringFixed(2))
	require.NotNil(t, created)
	assert.Equal(t, models.StatusCompleted, created.Status)
	assert.Equal(t, models.TypePayment, created.Type)
	assert.Equal(t, "100.00", created.Amount.StringFixed(2))
	assert.NotNil(t, created.CompletedAt)
	assert.Contains(t, created.Reference, "TXN_")
	assert.False(t, created.ReceiverWalletID.Valid)

	require.Len(t, feeRows, 1)
	assert.Equal(t, "1.50", feeRows[0].Amount.StringFixed(2))
	assert.Equal(t, models.FeeProcessing, feeRows[0].Type)
	assert.Equal(t, created.TransactionID, feeRows[0].TransactionID)
}

func TestMovementEngine_CrossCurrencyTransfer(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	userID := uuid.New()
	usd := wallet(userID, "USD", "1000.00")
	eur := wallet(userID, "EUR", "0")

	m.wallets.EXPECT().GetByID(ctx, usd.WalletID).Return(usd, nil)
	m.wallets.EXPECT().GetByID(ctx, eur.WalletID).Return(eur, nil)
	m.rates.EXPECT().GetRate(ctx, "USD", "EUR").Return(dec("0.9"), nil)
	m.txs.EXPECT().GetByReference(ctx, scopedReference(userID, "transfer-1")).Return(nil, xerrors.ErrTransactionNotFound)
	m.wallets.EXPECT().GetForUpdate(gomock.Any(), usd.WalletID, eur.WalletID).Return(map[uuid.UUID]*models.Wallet{
		usd.WalletID: {WalletID: usd.WalletID, UserID: userID, Currency: "USD", Balance: dec("1000.00")},
		eur.WalletID: {WalletID: eur.WalletID, UserID: userID, Currency: "EUR", Balance: decimal.Zero},
	}, nil)
	m.txs.EXPECT().GetByReference(gomock.Any(), scopedReference(userID, "transfer-1")).Return(nil, xerrors.ErrTransactionNotFound)
	m.wallets.EXPECT().Debit(gomock.Any(), usd.WalletID, decEq("50.75")).Return(dec("949.25"), nil)
	m.wallets.EXPECT().Credit(gomock.Any(), eur.WalletID, decEq("45.00")).Return(dec("45.00"), nil)

	var created *models.Transaction
	m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
		created = txn
		return nil
	})
	m.fees.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f *models.TransactionFee) error {
		assert.Equal(t, models.FeeCurrencyConversion, f.Type)
		assert.Equal(t, "0.75", f.Amount.StringFixed(2))
		assert.Equal(t, "USD", f.Currency)
		return nil
	})
	m.events.EXPECT().Publish(ctx, gomock.Any())

	result, err := e.ExecuteMovement(ctx, MovementSpec{
		RequesterID:         userID,
		Kind:                models.KindTransfer,
		SourceWalletID:      ptr(usd.WalletID),
		DestinationWalletID: ptr(eur.WalletID),
		Amount:              dec("50.00"),
		Currency:            "USD",
		IdempotencyKey:      "transfer-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "50.75", result.TotalDebit.StringFixed(2))
	assert.Equal(t, "45.00", result.CreditedAmount.StringFixed(2))
	assert.Equal(t, "949.25", result.SourceBalance.Decimal.StringFixed(2))
	assert.Equal(t, "45.00", result.DestinationBalance.Decimal.StringFixed(2))
	assert.Equal(t, models.TypeTransfer, created.Type)
	assert.Equal(t, userID.String()+"/transfer-1", created.Reference)
	assert.Equal(t, "0.9", created.Metadata[models.MetaConversionRate])
	assert.Equal(t, "EUR", created.Metadata[models.MetaTargetCurrency])
	assert.Equal(t, "45.00", created.Metadata[models.MetaConvertedAmount])
	assert.Len(t, result.Fees, 1)
}

func TestMovementEngine_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	userID := uuid.New()
	src, dst := uuid.New(), uuid.New()
	reference := scopedReference(userID, "transfer-1")

	stored := &models.Transaction{
		TransactionID:    uuid.New(),
		SenderWalletID:   uuid.NullUUID{UUID: src, Valid: true},
		ReceiverWalletID: uuid.NullUUID{UUID: dst, Valid: true},
		Amount:           dec("50.00"),
		Currency:         "USD",
		Kind:             models.KindTransfer,
		Status:           models.StatusCompleted,
		Reference:        reference,
		Metadata: models.Metadata{
			models.MetaConversionRate:  "0.9",
			models.MetaConvertedAmount: "45.00",
		},
	}
	m.txs.EXPECT().GetByReference(ctx, reference).Return(stored, nil).Times(3)
	m.fees.EXPECT().ListByTransaction(ctx, stored.TransactionID).Return([]models.TransactionFee{
		{Amount: dec("0.75"), Currency: "USD", Type: models.FeeCurrencyConversion},
	}, nil)

	spec := MovementSpec{
		RequesterID:         userID,
		Kind:                models.KindTransfer,
		SourceWalletID:      ptr(src),
		DestinationWalletID: ptr(dst),
		Amount:              dec("50"),
		Currency:            "USD",
		IdempotencyKey:      "transfer-1",
	}

	result, err := e.ExecuteMovement(ctx, spec)
	require.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, stored.TransactionID, result.Transaction.TransactionID)
	assert.Equal(t, "50.75", result.TotalDebit.StringFixed(2))
	assert.Equal(t, "45.00", result.CreditedAmount.StringFixed(2))

	t.Run("key reused for another amount", func(t *testing.T) {
		other := spec
		other.Amount = dec("60")
		_, err := e.ExecuteMovement(ctx, other)
		assert.ErrorIs(t, err, xerrors.ErrDuplicateReference)
	})

	t.Run("key reused for another destination", func(t *testing.T) {
		other := spec
		other.DestinationWalletID = ptr(uuid.New())
		_, err := e.ExecuteMovement(ctx, other)
		assert.ErrorIs(t, err, xerrors.ErrDuplicateReference)
	})
}

func TestMovementEngine_IdempotencyKeyIsPerRequester(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	alice, bob := uuid.New(), uuid.New()
	bobWallet := wallet(bob, "USD", "500.00")

	// Alice's order-1 is stored under her own scope and is never looked up.
	m.txs.EXPECT().GetByReference(gomock.Any(), scopedReference(alice, "order-1")).Times(0)
	m.txs.EXPECT().GetByReference(gomock.Any(), scopedReference(bob, "order-1")).
		Return(nil, xerrors.ErrTransactionNotFound).Times(2)

	m.wallets.EXPECT().GetByID(ctx, bobWallet.WalletID).Return(bobWallet, nil)
	m.wallets.EXPECT().GetForUpdate(gomock.Any(), bobWallet.WalletID).Return(map[uuid.UUID]*models.Wallet{
		bobWallet.WalletID: {WalletID: bobWallet.WalletID, UserID: bob, Currency: "USD", Balance: dec("500.00")},
	}, nil)
	m.wallets.EXPECT().Debit(gomock.Any(), bobWallet.WalletID, decEq("101.50")).Return(dec("398.50"), nil)

	var created *models.Transaction
	m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
		created = txn
		return nil
	})
	m.fees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.events.EXPECT().Publish(ctx, gomock.Any())

	result, err := e.ExecuteMovement(ctx, MovementSpec{
		RequesterID:    bob,
		Kind:           models.KindBillPayment,
		SourceWalletID: ptr(bobWallet.WalletID),
		Amount:         dec("100.00"),
		Currency:       "USD",
		IdempotencyKey: "order-1",
	})
	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, bobWallet.WalletID, created.SenderWalletID.UUID)
	assert.Equal(t, bob.String()+"/order-1", created.Reference)
	assert.Equal(t, "398.50", result.SourceBalance.Decimal.StringFixed(2))
}

func TestMovementEngine_IdempotencyKeyTooLong(t *testing.T) {
	e, _ := newEngine(t)

	_, err := e.ExecuteMovement(context.Background(), MovementSpec{
		RequesterID:    uuid.New(),
		Kind:           models.KindBillPayment,
		SourceWalletID: ptr(uuid.New()),
		Amount:         dec("10"),
		Currency:       "USD",
		IdempotencyKey: strings.Repeat("k", maxIdempotencyKeyLen+1),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidMovement)
}

func TestMovementEngine_FeeWriteFailureAbortsMovement(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	userID := uuid.New()
	w := wallet(userID, "USD", "1000.00")

	m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
	m.wallets.EXPECT().GetForUpdate(gomock.Any(), w.WalletID).Return(map[uuid.UUID]*models.Wallet{w.WalletID: w}, nil)
	m.wallets.EXPECT().Debit(gomock.Any(), w.WalletID, decEq("101.00")).Return(dec("899.00"), nil)
	m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.fees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	hookCalled := false
	_, err := e.ExecuteMovement(ctx, MovementSpec{
		RequesterID:    userID,
		Kind:           models.KindTaxPayment,
		SourceWalletID: ptr(w.WalletID),
		Amount:         dec("100"),
		Currency:       "USD",
		OnCommit: func(context.Context, *models.Transaction) error {
			hookCalled = true
			return nil
		},
	})
	assert.EqualError(t, err, "connection reset")
	assert.False(t, hookCalled)
}

func TestMovementEngine_Rejections(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("insufficient funds", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "100.00")
		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.wallets.EXPECT().GetForUpdate(gomock.Any(), w.WalletID).Return(map[uuid.UUID]*models.Wallet{w.WalletID: w}, nil)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindBillPayment, SourceWalletID: ptr(w.WalletID),
			Amount: dec("100.00"), Currency: "USD",
		})
		assert.ErrorIs(t, err, xerrors.ErrInsufficientFunds)
	})

	t.Run("foreign wallet", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(uuid.New(), "USD", "100.00")
		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindRecharge, SourceWalletID: ptr(w.WalletID),
			Amount: dec("10"), Currency: "USD",
		})
		assert.ErrorIs(t, err, xerrors.ErrForbidden)
	})

	t.Run("transfer to someone else", func(t *testing.T) {
		e, m := newEngine(t)
		src := wallet(userID, "USD", "100.00")
		dst := wallet(uuid.New(), "USD", "0")
		m.wallets.EXPECT().GetByID(ctx, src.WalletID).Return(src, nil)
		m.wallets.EXPECT().GetByID(ctx, dst.WalletID).Return(dst, nil)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindTransfer, SourceWalletID: ptr(src.WalletID),
			DestinationWalletID: ptr(dst.WalletID), Amount: dec("10"), Currency: "USD",
		})
		assert.ErrorIs(t, err, xerrors.ErrForbidden)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "EUR", "100.00")
		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindBillPayment, SourceWalletID: ptr(w.WalletID),
			Amount: dec("10"), Currency: "USD",
		})
		assert.ErrorIs(t, err, xerrors.ErrCurrencyMismatch)
	})

	t.Run("conversion unavailable", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "100.00")
		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.rates.EXPECT().GetRate(ctx, "USD", "XAU").Return(decimal.Zero, xerrors.ErrConversionUnavailable)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindBillPayment, SourceWalletID: ptr(w.WalletID),
			Amount: dec("10"), Currency: "USD", TargetCurrency: "xau",
		})
		assert.ErrorIs(t, err, xerrors.ErrConversionUnavailable)
	})

	t.Run("balance drift", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "100.00")
		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.wallets.EXPECT().GetForUpdate(gomock.Any(), w.WalletID).Return(map[uuid.UUID]*models.Wallet{w.WalletID: w}, nil)
		m.wallets.EXPECT().Debit(gomock.Any(), w.WalletID, decEq("10.50")).Return(dec("80.00"), nil)

		_, err := e.ExecuteMovement(ctx, MovementSpec{
			RequesterID: userID, Kind: models.KindRecharge, SourceWalletID: ptr(w.WalletID),
			Amount: dec("10"), Currency: "USD",
		})
		assert.ErrorIs(t, err, xerrors.ErrInvariantViolation)
	})
}

func TestValidateSpec(t *testing.T) {
	src, dst := uuid.New(), uuid.New()

	tests := []struct {
		name string
		spec MovementSpec
		ok   bool
	}{
		{"valid bill", MovementSpec{Kind: models.KindBillPayment, SourceWalletID: &src, Amount: dec("1.25"), Currency: "USD"}, true},
		{"valid funding", MovementSpec{Kind: models.KindWalletFunding, DestinationWalletID: &dst, Amount: dec("1"), Currency: "USD", PaymentToken: "pay_1"}, true},
		{"valid pending payout", MovementSpec{Kind: models.KindPayout, SourceWalletID: &src, Amount: dec("1"), Currency: "USD", Pending: true}, true},
		{"zero amount", MovementSpec{Kind: models.KindBillPayment, SourceWalletID: &src, Amount: decimal.Zero, Currency: "USD"}, false},
		{"negative amount", MovementSpec{Kind: models.KindBillPayment, SourceWalletID: &src, Amount: dec("-1"), Currency: "USD"}, false},
		{"three decimals", MovementSpec{Kind: models.KindBillPayment, SourceWalletID: &src, Amount: dec("1.005"), Currency: "USD"}, false},
		{"unknown kind", MovementSpec{Kind: "lottery", SourceWalletID: &src, Amount: dec("1"), Currency: "USD"}, false},
		{"no wallets", MovementSpec{Kind: models.KindBillPayment, Amount: dec("1"), Currency: "USD"}, false},
		{"same wallet", MovementSpec{Kind: models.KindTransfer, SourceWalletID: &src, DestinationWalletID: &src, Amount: dec("1"), Currency: "USD"}, false},
		{"transfer without destination", MovementSpec{Kind: models.KindTransfer, SourceWalletID: &src, Amount: dec("1"), Currency: "USD"}, false},
		{"inbound with source", MovementSpec{Kind: models.KindInvestmentSale, SourceWalletID: &src, DestinationWalletID: &dst, Amount: dec("1"), Currency: "USD"}, false},
		{"pending transfer", MovementSpec{Kind: models.KindTransfer, SourceWalletID: &src, DestinationWalletID: &dst, Amount: dec("1"), Currency: "USD", Pending: true}, false},
		{"funding without token", MovementSpec{Kind: models.KindWalletFunding, DestinationWalletID: &dst, Amount: dec("1"), Currency: "USD"}, false},
		{"token on bill", MovementSpec{Kind: models.KindBillPayment, SourceWalletID: &src, Amount: dec("1"), Currency: "USD", PaymentToken: "pay_1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSpec(tt.spec)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, xerrors.ErrInvalidMovement)
			}
		})
	}
}

func TestMovementEngine_CardFunding(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	spec := func(w *models.Wallet) MovementSpec {
		return MovementSpec{
			RequesterID:         userID,
			Kind:                models.KindWalletFunding,
			DestinationWalletID: ptr(w.WalletID),
			Amount:              dec("200.00"),
			Currency:            "USD",
			PaymentToken:        "pay_1",
		}
	}

	t.Run("credits net of fees", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "10.00")

		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.gateway.EXPECT().Charge(ctx, "pay_1", decEq("200"), "USD").Return(models.GatewayReceipt{ExternalID: "rzp_pay_1", Status: "captured"}, nil)
		m.wallets.EXPECT().GetForUpdate(gomock.Any(), w.WalletID).Return(map[uuid.UUID]*models.Wallet{w.WalletID: w}, nil)
		m.wallets.EXPECT().Credit(gomock.Any(), w.WalletID, decEq("195.00")).Return(dec("205.00"), nil)
		m.txs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
			assert.Equal(t, models.ChannelCard, txn.Channel)
			assert.Equal(t, "rzp_pay_1", txn.ExternalID)
			assert.False(t, txn.SenderWalletID.Valid)
			return nil
		})
		m.fees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.events.EXPECT().Publish(ctx, gomock.Any())

		result, err := e.ExecuteMovement(ctx, spec(w))
		require.NoError(t, err)
		assert.Equal(t, "195.00", result.CreditedAmount.StringFixed(2))
		assert.True(t, result.TotalDebit.IsZero())
		assert.False(t, result.SourceBalance.Valid)
	})

	t.Run("charge failure", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "10.00")

		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.gateway.EXPECT().Charge(ctx, "pay_1", gomock.Any(), "USD").Return(models.GatewayReceipt{}, xerrors.ErrGateway)

		_, err := e.ExecuteMovement(ctx, spec(w))
		assert.ErrorIs(t, err, xerrors.ErrGateway)
	})

	t.Run("ledger failure refunds the charge", func(t *testing.T) {
		e, m := newEngine(t)
		w := wallet(userID, "USD", "10.00")

		m.wallets.EXPECT().GetByID(ctx, w.WalletID).Return(w, nil)
		m.gateway.EXPECT().Charge(ctx, "pay_1", gomock.Any(), "USD").Return(models.GatewayReceipt{ExternalID: "rzp_pay_1"}, nil)
		m.wallets.EXPECT().GetForUpdate(gomock.Any(), w.WalletID).Return(nil, xerrors.ErrPersistenceConflict)
		m.gateway.EXPECT().Refund(gomock.Any(), "rzp_pay_1", decEq("200"), "USD").Return(models.GatewayReceipt{ExternalID: "rfnd_1"}, nil)

		_, err := e.ExecuteMovement(ctx, spec(w))
		assert.ErrorIs(t, err, xerrors.ErrPersistenceConflict)
	})
}

func TestMovementEngine_ConfirmMovement(t *testing.T) {
	ctx := context.Background()
	src := uuid.New()

	pending := func() *models.Transaction {
		return &models.Transaction{
			TransactionID:  uuid.New(),
			SenderWalletID: uuid.NullUUID{UUID: src, Valid: true},
			Amount:         dec("75.00"),
			Currency:       "USD",
			Type:           models.TypePayment,
			Status:         models.StatusPending,
			Kind:           models.KindPayout,
			Metadata:       models.Metadata{},
		}
	}
	payoutFees := []models.TransactionFee{{Amount: dec("1.00"), Currency: "USD", Type: models.FeeProcessing}}

	t.Run("success completes", func(t *testing.T) {
		e, m := newEngine(t)
		txn := pending()

		m.txs.EXPECT().GetForUpdate(gomock.Any(), txn.TransactionID).Return(txn, nil)
		m.fees.EXPECT().ListByTransaction(gomock.Any(), txn.TransactionID).Return(payoutFees, nil)
		m.txs.EXPECT().UpdateStatus(gomock.Any(), txn.TransactionID, models.StatusUpdate{
			From: models.StatusPending, To: models.StatusCompleted, ExternalID: "pout_1",
		}).Return(nil)
		m.events.EXPECT().Publish(ctx, gomock.Any()).Do(func(_ context.Context, ev models.LedgerEvent) {
			assert.Equal(t, models.EventTransactionCompleted, ev.EventType)
		})

		settled := false
		result, err := e.ConfirmMovement(ctx, txn.TransactionID, GatewayOutcome{Success: true, ExternalID: "pout_1"},
			func(_ context.Context, got *models.Transaction) error {
				settled = got.Status == models.StatusCompleted
				return nil
			})
		require.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, "pout_1", result.Transaction.ExternalID)
		assert.NotNil(t, result.Transaction.CompletedAt)
	})

	t.Run("failure credits principal and fees back", func(t *testing.T) {
		e, m := newEngine(t)
		txn := pending()
		w := &models.Wallet{WalletID: src, Currency: "USD", Balance: dec("24.00")}

		m.txs.EXPECT().GetForUpdate(gomock.Any(), txn.TransactionID).Return(txn, nil)
		m.fees.EXPECT().ListByTransaction(gomock.Any(), txn.TransactionID).Return(payoutFees, nil)
		m.wallets.EXPECT().GetForUpdate(gomock.Any(), src).Return(map[uuid.UUID]*models.Wallet{src: w}, nil)
		m.wallets.EXPECT().Credit(gomock.Any(), src, decEq("76.00")).Return(dec("100.00"), nil)
		m.txs.EXPECT().UpdateStatus(gomock.Any(), txn.TransactionID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, u models.StatusUpdate) error {
				assert.Equal(t, models.StatusFailed, u.To)
				assert.Equal(t, "account closed", u.Metadata[models.MetaFailureReason])
				assert.Equal(t, "1.00", u.Metadata[models.MetaFeesRefunded])
				return nil
			})
		m.events.EXPECT().Publish(ctx, gomock.Any()).Do(func(_ context.Context, ev models.LedgerEvent) {
			assert.Equal(t, models.EventTransactionFailed, ev.EventType)
			assert.True(t, ev.FeeTotal.IsZero())
		})

		result, err := e.ConfirmMovement(ctx, txn.TransactionID, GatewayOutcome{Reason: "account closed"}, nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusFailed, result.Transaction.Status)
		assert.Equal(t, "100.00", result.SourceBalance.Decimal.StringFixed(2))
		assert.Equal(t, "1.00", result.Transaction.Metadata[models.MetaFeesRefunded])
	})

	t.Run("repeated outcome is a no-op", func(t *testing.T) {
		e, m := newEngine(t)
		txn := pending()
		txn.Status = models.StatusCompleted

		m.txs.EXPECT().GetForUpdate(gomock.Any(), txn.TransactionID).Return(txn, nil)
		m.fees.EXPECT().ListByTransaction(gomock.Any(), txn.TransactionID).Return(payoutFees, nil)

		result, err := e.ConfirmMovement(ctx, txn.TransactionID, GatewayOutcome{Success: true}, nil)
		require.NoError(t, err)
		assert.True(t, result.Replayed)
	})

	t.Run("contradicting outcome", func(t *testing.T) {
		e, m := newEngine(t)
		txn := pending()
		txn.Status = models.StatusCompleted

		m.txs.EXPECT().GetForUpdate(gomock.Any(), txn.TransactionID).Return(txn, nil)
		m.fees.EXPECT().ListByTransaction(gomock.Any(), txn.TransactionID).Return(payoutFees, nil)

		_, err := e.ConfirmMovement(ctx, txn.TransactionID, GatewayOutcome{Success: false}, nil)
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})
}
