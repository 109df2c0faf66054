package handlers

//go:generate mockgen -source=payout.go -destination=payout_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
)

// Payouter starts withdrawals to bank accounts.
type Payouter interface {
	Payout(ctx context.Context, userID uuid.UUID, req models.PayoutRequest) (*services.MovementResult, *models.PaymentRecord, error)
}

// PayoutSettler applies a gateway outcome to a pending payout.
type PayoutSettler interface {
	Settle(ctx context.Context, transactionID uuid.UUID, outcome services.GatewayOutcome) (*services.MovementResult, error)
}

// NewPayoutHandler returns an HTTP handler for bank payouts.
// @Summary Payout
// @Description Debits the wallet and leaves the payout pending until the gateway confirms it
// @Tags payouts
// @Accept json
// @Produce json
// @Param request body models.PayoutRequest true "Payout Request"
// @Success 202 {object} models.MovementResponse "Payout pending"
// @Success 200 {object} models.MovementResponse "Replayed payout"
// @Failure 400 {object} models.ErrorResponse "Invalid request or insufficient funds"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Wallet not owned by caller"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Router /payouts [post]
// @Security BearerAuth
func NewPayoutHandler(svc Payouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		var req models.PayoutRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, record, err := svc.Payout(r.Context(), requester.UserID, req)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("payout failed", "userID", requester.UserID, "source", req.SourceWalletID, "amount", req.Amount, "error", err)
			writeError(w, r, err)
			return
		}

		status := http.StatusAccepted
		if result.Replayed {
			status = http.StatusOK
		}
		writeJSON(w, status, movementResponse(result, record))
	}
}

// NewConfirmPayoutHandler returns an HTTP handler that settles a pending payout.
// @Summary Confirm payout
// @Description Completes or fails a pending payout. A failed payout credits the wallet back.
// @Tags payouts
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param request body models.ConfirmPayoutRequest true "Gateway outcome"
// @Success 200 {object} models.MovementResponse "Payout settled"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Admin only"
// @Failure 404 {object} models.ErrorResponse "Transaction not found"
// @Failure 409 {object} models.ErrorResponse "Payout already settled the other way"
// @Router /payouts/{transactionID}/confirm [post]
// @Security BearerAuth
func NewConfirmPayoutHandler(svc PayoutSettler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := pathUUID(r, "transactionID")
		if err != nil {
			writeBadRequest(w, "Invalid transaction id")
			return
		}

		var req models.ConfirmPayoutRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := svc.Settle(r.Context(), transactionID, services.GatewayOutcome{
			Success:    req.Success,
			ExternalID: req.ExternalID,
			Reason:     req.Reason,
		})
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to settle payout", "transaction_id", transactionID, "success", req.Success, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, movementResponse(result, nil))
	}
}
