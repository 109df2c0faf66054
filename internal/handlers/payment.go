package handlers

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/sbilibin2017/gw-ledger/internal/services"
)

// Payer settles resource payments.
type Payer interface {
	Pay(ctx context.Context, userID uuid.UUID, kind models.OperationKind, req models.PaymentRequest) (*services.MovementResult, *models.PaymentRecord, error)
}

// PaymentCanceller cancels a payment record by reversing its movement.
type PaymentCanceller interface {
	Cancel(ctx context.Context, recordID uuid.UUID, requester services.Requester) (*services.MovementResult, *models.PaymentRecord, error)
}

// RecordLister pages through the caller's payment records.
type RecordLister interface {
	ListRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PaymentRecord, int, int, error)
}

// Reverser reverses any completed movement.
type Reverser interface {
	Reverse(ctx context.Context, transactionID uuid.UUID, requester services.Requester) (*services.MovementResult, error)
}

// NewPaymentHandler returns an HTTP handler for resource payments.
// @Summary Pay
// @Description Pays a bill, recharge, invoice, loan installment, investment, SIP, tax, insurance premium or card bill, and stores the payment record
// @Tags payments
// @Accept json
// @Produce json
// @Param kind path string true "Payment kind" Enums(bill_payment, recharge, invoice_payment, loan_installment, investment_purchase, investment_sale, sip_installment, tax_payment, insurance_premium, card_payment)
// @Param request body models.PaymentRequest true "Payment Request"
// @Success 201 {object} models.MovementResponse "Payment completed"
// @Success 200 {object} models.MovementResponse "Replayed payment"
// @Failure 400 {object} models.ErrorResponse "Invalid request or insufficient funds"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Wallet not owned by caller"
// @Failure 404 {object} models.ErrorResponse "Wallet not found"
// @Failure 409 {object} models.ErrorResponse "Idempotency key reused"
// @Failure 422 {object} models.ErrorResponse "Conversion unavailable"
// @Router /payments/{kind} [post]
// @Security BearerAuth
func NewPaymentHandler(svc Payer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		kind := models.OperationKind(chi.URLParam(r, "kind"))
		if !kind.IsPayable() {
			logger.FromContext(r.Context()).Warnw("unknown payment kind", "kind", kind)
			writeBadRequest(w, "Unknown payment kind")
			return
		}

		var req models.PaymentRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, record, err := svc.Pay(r.Context(), requester.UserID, kind, req)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("payment failed", "userID", requester.UserID, "kind", kind, "counterparty", req.CounterpartyRef, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, movementStatus(result), movementResponse(result, record))
	}
}

// NewCancelPaymentHandler returns an HTTP handler that cancels a payment record.
// @Summary Cancel payment
// @Description Reverses the movement behind a payment record and marks the record cancelled, unpaid or refunded
// @Tags payments
// @Produce json
// @Param recordID path string true "Payment record ID"
// @Success 200 {object} models.MovementResponse "Payment reversed"
// @Failure 400 {object} models.ErrorResponse "Invalid record id"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Record not owned by caller"
// @Failure 404 {object} models.ErrorResponse "Record not found"
// @Failure 409 {object} models.ErrorResponse "Already reversed or not reversible"
// @Router /payments/records/{recordID}/cancel [post]
// @Security BearerAuth
func NewCancelPaymentHandler(svc PaymentCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		recordID, err := pathUUID(r, "recordID")
		if err != nil {
			writeBadRequest(w, "Invalid record id")
			return
		}

		result, record, err := svc.Cancel(r.Context(), recordID, requester)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to cancel payment", "record_id", recordID, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, movementResponse(result, record))
	}
}

// NewListRecordsHandler returns an HTTP handler listing the caller's payment records.
// @Summary List payment records
// @Description Returns bills, recharges, loans, investments, policies and payouts paid by the caller, newest first
// @Tags payments
// @Produce json
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} models.RecordsResponse "Payment records"
// @Failure 400 {object} models.ErrorResponse "Invalid paging"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /payments/records [get]
// @Security BearerAuth
func NewListRecordsHandler(svc RecordLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
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

		records, limit, offset, err := svc.ListRecords(r.Context(), requester.UserID, limit, offset)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if records == nil {
			records = []models.PaymentRecord{}
		}

		writeJSON(w, http.StatusOK, models.RecordsResponse{Records: records, Limit: limit, Offset: offset})
	}
}

// NewReverseHandler returns an HTTP handler that reverses a transaction.
// @Summary Reverse transaction
// @Description Records a linked refund transaction and returns the money to the payer, minus the reversal fee
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} models.MovementResponse "Transaction reversed"
// @Failure 400 {object} models.ErrorResponse "Invalid id or receiver short of funds"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Caller is not the payer"
// @Failure 404 {object} models.ErrorResponse "Transaction not found"
// @Failure 409 {object} models.ErrorResponse "Already reversed or not reversible"
// @Failure 502 {object} models.ErrorResponse "Card refund failed"
// @Router /transactions/{transactionID}/reverse [post]
// @Security BearerAuth
func NewReverseHandler(svc Reverser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := requesterFrom(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		transactionID, err := pathUUID(r, "transactionID")
		if err != nil {
			writeBadRequest(w, "Invalid transaction id")
			return
		}

		result, err := svc.Reverse(r.Context(), transactionID, requester)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to reverse transaction", "transaction_id", transactionID, "error", err)
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, movementResponse(result, nil))
	}
}
