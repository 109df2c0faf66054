package handlers

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
)

// Transferer defines the interface that the service must implement.
type Transferer interface {
	Transfer(ctx context.Context, userID uuid.UUID, req models.TransferRequest) (*services.MovementResult, error)
}

// WalletFunder tops up a wallet from a card.
type WalletFunder interface {
	Fund(ctx context.Context, userID, walletID uuid.UUID, req models.FundWalletRequest) (*services.MovementResult, error)
}

// NewTransferHandler returns an HTTP handler for wallet to wallet transfers.
// @Summary Transfer funds
// @Description Moves money between two wallets of the caller, converting when currencies differ. Replays with the same idempotency key return the original transaction.
// @Tags transfers
// @Accept json
// @Produce json
// @Param request body models.TransferRequest true "Transfer Request"
// @Success 201 {object} models.MovementResponse "Transfer completed"
// @Success 200 {object} models.MovementResponse "Replayed transfer"
// @Failure 400 {object} models.ErrorResponse "Invalid request or insufficient funds"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Wallet not owned by caller"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 409 {object} models.ErrorResponse "Idempotency key reused"
// @Failure 422 {object} models.ErrorResponse "Conversion unavailable"
// @Router /transfers [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		var req models.TransferRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := svc.Transfer(r.Context(), requester.UserID, req)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("transfer failed",
				"userID", requester.UserID,
				"source", req.SourceWalletID,
				"destination", req.DestinationWalletID,
				"amount", req.Amount,
				"error", err,
			)
			writeError(w, r, err)
			return
		}

		writeJSON(w, movementStatus(result), movementResponse(result, nil))
	}
}

// NewFundWalletHandler returns an HTTP handler for card funded top-ups.
// @Summary Fund wallet
// @Description Captures an authorised card payment and credits the wallet net of fees
// @Tags wallets
// @Accept json
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param request body models.FundWalletRequest true "Fund Wallet Request"
// @Success 201 {object} models.MovementResponse "Wallet funded"
// @Success 200 {object} models.MovementResponse "Replayed top-up"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Wallet not owned by caller"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 502 {object} models.ErrorResponse "Card charge failed"
// @Router /wallets/{walletID}/fund [post]
// @Security BearerAuth
func NewFundWalletHandler(svc WalletFunder) http.HandlerFunc {
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

		var req models.FundWalletRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := svc.Fund(r.Context(), requester.UserID, walletID, req)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("wallet funding failed", "userID", requester.UserID, "wallet_id", walletID, "amount", req.Amount, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, movementStatus(result), movementResponse(result, nil))
	}
}
