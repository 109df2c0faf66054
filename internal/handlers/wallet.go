package handlers

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
)

// WalletCreator defines the interface that the service must implement.
type WalletCreator interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, req models.CreateWalletRequest) (*models.Wallet, error)
}

// WalletLister returns the wallets of a user.
type WalletLister interface {
	ListWallets(ctx context.Context, userID uuid.UUID) ([]models.Wallet, error)
}

// HistoryReader pages through the transactions of a wallet.
type HistoryReader interface {
	History(ctx context.Context, userID, walletID uuid.UUID, limit, offset int) ([]models.Transaction, int, int, error)
}

// NewCreateWalletHandler returns an HTTP handler that opens a wallet.
// @Summary Open wallet
// @Description Opens a zero-balance wallet in the given currency for the caller
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body models.CreateWalletRequest true "Create Wallet Request"
// @Success 201 {object} models.Wallet "Wallet opened"
// @Failure 400 {object} models.ErrorResponse "Invalid currency or account type"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 409 {object} models.ErrorResponse "Wallet already exists"
// @Router /wallets [post]
// @Security BearerAuth
func NewCreateWalletHandler(svc WalletCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		var req models.CreateWalletRequest
		if !decodeBody(w, r, &req) {
			return
		}

		wallet, err := svc.CreateWallet(r.Context(), requester.UserID, req)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to create wallet", "userID", requester.UserID, "currency", req.Currency, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, wallet)
	}
}

// NewListWalletsHandler returns an HTTP handler listing the caller's wallets.
// @Summary List wallets
// @Description Returns all wallets of the authenticated user with their balances
// @Tags wallets
// @Produce json
// @Success 200 {object} models.WalletsResponse "Wallets"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /wallets [get]
// @Security BearerAuth
func NewListWalletsHandler(svc WalletLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		wallets, err := svc.ListWallets(r.Context(), requester.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if wallets == nil {
			wallets = []models.Wallet{}
		}

		writeJSON(w, http.StatusOK, models.WalletsResponse{Wallets: wallets})
	}
}

// NewWalletHistoryHandler returns an HTTP handler for wallet history.
// @Summary Wallet history
// @Description Returns transactions touching the wallet, newest first
// @Tags wallets
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} models.TransactionsResponse "Transactions"
// @Failure 400 {object} models.ErrorResponse "Invalid wallet id or paging"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Not the wallet owner"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Router /wallets/{walletID}/transactions [get]
// @Security BearerAuth
func NewWalletHistoryHandler(svc HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		walletID, err := pathUUID(r, "walletID")
		if err != nil {
			writeBadRequest(w, "Invalid wallet id")
			return
		}

		limit, err := queryInt(r, "limit")
		if err != nil {
			writeBadRequest(w, "Invalid limit")
			return
		}
		offset, err := queryInt(r, "offset")
		if err != nil {
			writeBadRequest(w, "Invalid offset")
			return
		}

		txs, limit, offset, err := svc.History(r.Context(), requester.UserID, walletID, limit, offset)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if txs == nil {
			txs = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, models.TransactionsResponse{
			Transactions: txs,
			Limit:        limit,
			Offset:       offset,
		})
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
