package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
)

// statusFromError maps the ledger error taxonomy onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrWalletNotFound),
		errors.Is(err, xerrors.ErrTransactionNotFound),
		errors.Is(err, xerrors.ErrRecordNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, xerrors.ErrInvalidMovement),
		errors.Is(err, xerrors.ErrInsufficientFunds),
		errors.Is(err, xerrors.ErrCurrencyMismatch):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrConversionUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xerrors.ErrNotReversible),
		errors.Is(err, xerrors.ErrAlreadyReversed),
		errors.Is(err, xerrors.ErrInvalidTransition),
		errors.Is(err, xerrors.ErrWalletExists),
		errors.Is(err, xerrors.ErrDuplicateReference):
		return http.StatusConflict
	case errors.Is(err, xerrors.ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, xerrors.ErrPersistenceConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError answers with the mapped status. Internal errors are logged and
// answered with the request id instead of the message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status != http.StatusInternalServerError {
		writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
		return
	}

	logger.FromContext(r.Context()).Errorw("request failed", "uri", r.RequestURI, "error", err)
	writeJSON(w, status, models.ErrorResponse{
		Error:     "Internal server error",
		RequestID: middlewares.RequestIDFromContext(r.Context()),
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

// requesterFrom returns the caller set by the auth middleware.
func requesterFrom(r *http.Request) (services.Requester, bool) {
	claims := middlewares.ClaimsFromContext(r.Context())
	if claims == nil || claims.UserID == uuid.Nil {
		return services.Requester{}, false
	}
	return services.Requester{UserID: claims.UserID, IsAdmin: claims.IsAdmin()}, true
}

// pathUUID parses a chi URL parameter as a uuid.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context()).Errorw("failed to decode request body", "uri", r.RequestURI, "error", err)
		writeBadRequest(w, "Invalid request body")
		return false
	}
	return true
}

func movementResponse(result *services.MovementResult, record *models.PaymentRecord) models.MovementResponse {
	resp := models.MovementResponse{
		Fees:           result.Fees,
		TotalDebit:     result.TotalDebit,
		CreditedAmount: result.CreditedAmount,
		Rate:           result.Rate,
		Record:         record,
		Replayed:       result.Replayed,
	}
	if resp.Fees == nil {
		resp.Fees = []models.TransactionFee{}
	}
	if result.Transaction != nil {
		resp.Transaction = *result.Transaction
	}
	return resp
}

// movementStatus is 201 for a fresh movement and 200 for a replay.
func movementStatus(result *services.MovementResult) int {
	if result.Replayed {
		return http.StatusOK
	}
	return http.StatusCreated
}
