package services

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// WalletWriter creates wallets.
type WalletWriter interface {
	Create(ctx context.Context, w *models.Wallet) error // Opens a wallet with zero balance
}

// WalletReader reads wallets.
type WalletReader interface {
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)   // Returns one wallet
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error) // Returns all wallets of a user
}

// TransactionLister pages through wallet history.
type TransactionLister interface {
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]models.Transaction, error)
}

// WalletService handles wallet lifecycle, history and the wallet-level
// movements (transfers and card funding).
type WalletService struct {
	writeRepo WalletWriter
	readRepo  WalletReader
	history   TransactionLister
	engine    MovementExecutor
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	writeRepo WalletWriter,
	readRepo WalletReader,
	history TransactionLister,
	engine MovementExecutor,
) *WalletService {
	return &WalletService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		history:   history,
		engine:    engine,
	}
}

// CreateWallet opens a zero-balance wallet for userID.
func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID, req models.CreateWalletRequest) (*models.Wallet, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !currencyCode.MatchString(currency) {
		return nil, fmt.Errorf("%w: invalid currency %q", xerrors.ErrInvalidMovement, req.Currency)
	}
	accountType := req.AccountType
	if accountType == "" {
		accountType = models.AccountSavings
	}
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: invalid account type %q", xerrors.ErrInvalidMovement, req.AccountType)
	}

	w := &models.Wallet{
		WalletID:    uuid.New(),
		UserID:      userID,
		Currency:    currency,
		AccountType: accountType,
	}
	if err := s.writeRepo.Create(ctx, w); err != nil {
		logger.Log.Errorw("failed to create wallet", "userID", userID, "currency", currency, "error", err)
		return nil, err
	}

	logger.Log.Infow("wallet created", "userID", userID, "wallet_id", w.WalletID, "currency", currency)
	return w, nil
}

// ListWallets returns the caller's wallets.
func (s *WalletService) ListWallets(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error) {
	wallets, err := s.readRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list wallets", "userID", userID, "error", err)
		return nil, err
	}
	return wallets, nil
}

// History returns a page of transactions touching walletID. Only the owner
// may read it. limit is clamped to (0, 500], 0 means the default of 50.
func (s *WalletService) History(ctx context.Context, userID, walletID uuid.UUID, limit, offset int) ([]models.Transaction, int, int, error) {
	w, err := s.readRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, 0, 0, err
	}
	if w.UserID != userID {
		return nil, 0, 0, fmt.Errorf("%w: wallet %s", xerrors.ErrForbidden, walletID)
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)
	offset = max(offset, 0)

	txs, err := s.history.ListByWallet(ctx, walletID, limit, offset)
	if err != nil {
		logger.Log.Errorw("failed to list wallet history", "wallet_id", walletID, "error", err)
		return nil, 0, 0, err
	}
	return txs, limit, offset, nil
}

// Transfer moves money between two wallets of the same user, converting
// when their currencies differ.
func (s *WalletService) Transfer(ctx context.Context, userID uuid.UUID, req models.TransferRequest) (*MovementResult, error) {
	src, dst := req.SourceWalletID, req.DestinationWalletID
	return s.engine.ExecuteMovement(ctx, MovementSpec{
		RequesterID:         userID,
		Kind:                models.KindTransfer,
		SourceWalletID:      &src,
		DestinationWalletID: &dst,
		Amount:              req.Amount,
		Currency:            req.Currency,
		IdempotencyKey:      req.IdempotencyKey,
		Description:         req.Description,
	})
}

// Fund tops up walletID from a card. The card is charged the full amount
// and the wallet receives it net of fees.
func (s *WalletService) Fund(ctx context.Context, userID, walletID uuid.UUID, req models.FundWalletRequest) (*MovementResult, error) {
	return s.engine.ExecuteMovement(ctx, MovementSpec{
		RequesterID:         userID,
		Kind:                models.KindWalletFunding,
		DestinationWalletID: &walletID,
		Amount:              req.Amount,
		Currency:            req.Currency,
		IdempotencyKey:      req.IdempotencyKey,
		Description:         "card top-up",
		PaymentToken:        req.PaymentToken,
	})
}
