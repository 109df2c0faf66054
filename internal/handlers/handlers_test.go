package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
	"github.com/sbilibin2017/gw-ledger/internal/xerrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve routes req through a chi router so URL params resolve. A nil claims
// value sends the request unauthenticated.
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target string, body any, claims *jwt.Claims) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	if claims != nil {
		req = req.WithContext(middlewares.WithClaims(req.Context(), claims))
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func userClaims(id uuid.UUID) *jwt.Claims {
	return &jwt.Claims{UserID: id, Role: jwt.RoleUser}
}

func adminClaims(id uuid.UUID) *jwt.Claims {
	return &jwt.Claims{UserID: id, Role: jwt.RoleAdmin}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleResult(replayed bool) *services.MovementResult {
	txID := uuid.New()
	return &services.MovementResult{
		Transaction: &models.Transaction{
			TransactionID: txID,
			Amount:        dec("50.00"),
			Currency:      "USD",
			Type:          models.TypeTransfer,
			Status:        models.StatusCompleted,
			Kind:          models.KindTransfer,
			Reference:     "TXN_01J",
		},
		Fees: []models.TransactionFee{{
			FeeID:         uuid.New(),
			TransactionID: txID,
			Amount:        dec("0.75"),
			Currency:      "USD",
			Type:          models.FeeCurrencyConversion,
		}},
		TotalDebit:     dec("50.75"),
		CreditedAmount: dec("45.00"),
		Rate:           dec("0.9"),
		Replayed:       replayed,
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{xerrors.ErrWalletNotFound, http.StatusNotFound},
		{xerrors.ErrTransactionNotFound, http.StatusNotFound},
		{xerrors.ErrRecordNotFound, http.StatusNotFound},
		{xerrors.ErrNotFound, http.StatusNotFound},
		{xerrors.ErrForbidden, http.StatusForbidden},
		{xerrors.ErrInvalidMovement, http.StatusBadRequest},
		{xerrors.ErrInsufficientFunds, http.StatusBadRequest},
		{xerrors.ErrCurrencyMismatch, http.StatusBadRequest},
		{xerrors.ErrConversionUnavailable, http.StatusUnprocessableEntity},
		{xerrors.ErrNotReversible, http.StatusConflict},
		{xerrors.ErrAlreadyReversed, http.StatusConflict},
		{xerrors.ErrInvalidTransition, http.StatusConflict},
		{xerrors.ErrWalletExists, http.StatusConflict},
		{xerrors.ErrDuplicateReference, http.StatusConflict},
		{xerrors.ErrGateway, http.StatusBadGateway},
		{xerrors.ErrPersistenceConflict, http.StatusServiceUnavailable},
		{xerrors.ErrInvariantViolation, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
			assert.Equal(t, tt.want, statusFromError(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	reqID := uuid.New().String()
	h := middlewares.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New("pq: connection refused to 10.0.0.3"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set(middlewares.RequestIDHeader, reqID)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.3")
	body := decodeJSON(t, rr)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, reqID, body["request_id"])
}

func TestWriteError_ExposesDomainErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	writeError(rr, req, fmt.Errorf("%w: wallet holds 10.00", xerrors.ErrInsufficientFunds))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeJSON(t, rr)
	assert.True(t, strings.HasPrefix(body["error"].(string), "insufficient funds"))
}

func TestRequesterFrom(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := requesterFrom(req)
	assert.False(t, ok)

	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{}))
	_, ok = requesterFrom(req)
	assert.False(t, ok, "nil user id")

	req = req.WithContext(middlewares.WithClaims(req.Context(), adminClaims(userID)))
	requester, ok := requesterFrom(req)
	require.True(t, ok)
	assert.Equal(t, services.Requester{UserID: userID, IsAdmin: true}, requester)
}

func TestMovementResponse(t *testing.T) {
	result := sampleResult(false)
	record := &models.PaymentRecord{RecordID: uuid.New()}

	resp := movementResponse(result, record)
	assert.Equal(t, result.Transaction.TransactionID, resp.Transaction.TransactionID)
	assert.Len(t, resp.Fees, 1)
	assert.Equal(t, "50.75", resp.TotalDebit.StringFixed(2))
	assert.Same(t, record, resp.Record)
	assert.Equal(t, http.StatusCreated, movementStatus(result))

	empty := movementResponse(&services.MovementResult{Replayed: true}, nil)
	assert.NotNil(t, empty.Fees)
	assert.Equal(t, http.StatusOK, movementStatus(&services.MovementResult{Replayed: true}))
}
