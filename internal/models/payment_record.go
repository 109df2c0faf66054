package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordStatus is the business status of a domain record (bill, loan
// installment, investment and so on).
type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
	RecordCancelled RecordStatus = "cancelled"
	RecordRefunded  RecordStatus = "refunded"
	RecordPaid      RecordStatus = "paid"
	RecordUnpaid    RecordStatus = "unpaid"
	RecordActive    RecordStatus = "active"
	RecordSold      RecordStatus = "sold"
)

// SettledStatus is the record status once the movement for kind has completed.
func SettledStatus(kind OperationKind) RecordStatus {
	switch kind {
	case KindLoanInstallment:
		return RecordPaid
	case KindInvestmentPurchase:
		return RecordActive
	case KindInvestmentSale:
		return RecordSold
	}
	return RecordCompleted
}

// ReversedStatus is the record status after the movement for kind was reversed.
func ReversedStatus(kind OperationKind) RecordStatus {
	switch kind {
	case KindBillPayment, KindRecharge:
		return RecordCancelled
	case KindLoanInstallment:
		return RecordUnpaid
	}
	return RecordRefunded
}

// PaymentRecord is the domain record a money movement settles.
type PaymentRecord struct {
	RecordID        uuid.UUID       `json:"record_id" db:"record_id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Kind            OperationKind   `json:"kind" db:"kind"`
	CounterpartyRef string          `json:"counterparty_ref" db:"counterparty_ref"` // Biller, loan, policy, invoice...
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Currency        string          `json:"currency" db:"currency"`
	Status          RecordStatus    `json:"status" db:"status"`
	TransactionID   uuid.NullUUID   `json:"transaction_id" db:"transaction_id"`
	Metadata        Metadata        `json:"metadata" db:"metadata"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// RecordsResponse is a page of the caller's payment records
// swagger:model RecordsResponse
type RecordsResponse struct {
	Records []PaymentRecord `json:"records"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
