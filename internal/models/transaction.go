package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the ledger-level category of a transaction.
type TransactionType string

const (
	TypePayment  TransactionType = "payment"
	TypeRefund   TransactionType = "refund"
	TypeTransfer TransactionType = "transfer"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusRefunded  TransactionStatus = "refunded"
)

// CanTransitionTo reports whether the status machine allows s -> next.
// pending -> completed | failed, completed -> refunded. Everything else is final.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusCompleted || next == StatusFailed
	case StatusCompleted:
		return next == StatusRefunded
	}
	return false
}

// StatusUpdate describes a status transition and the fields set with it.
type StatusUpdate struct {
	From       TransactionStatus
	To         TransactionStatus
	ExternalID string   // kept when empty
	Metadata   Metadata // merged into the stored metadata
}

// Metadata is a free-form string map stored as JSONB.
type Metadata map[string]string

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("metadata: unsupported type %T", src)
	}
	out := Metadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Metadata keys written by the engine.
const (
	MetaConversionRate      = "conversion_rate"
	MetaTargetCurrency      = "target_currency"
	MetaConvertedAmount     = "converted_amount"
	MetaOriginalTransaction = "original_transaction_id"
	MetaRefundTransaction   = "refund_transaction_id"
	MetaGatewayRefundID     = "gateway_refund_id"
	MetaFailureReason       = "failure_reason"
	MetaFeesRefunded        = "fees_refunded"
)

// Transaction represents one money movement in the ledger.
type Transaction struct {
	TransactionID    uuid.UUID         `json:"transaction_id" db:"transaction_id"`         // Unique transaction identifier
	SenderWalletID   uuid.NullUUID     `json:"sender_wallet_id" db:"sender_wallet_id"`     // Debited wallet, if any
	ReceiverWalletID uuid.NullUUID     `json:"receiver_wallet_id" db:"receiver_wallet_id"` // Credited wallet, if any
	Amount           decimal.Decimal   `json:"amount" db:"amount"`                         // Principal, always positive
	Currency         string            `json:"currency" db:"currency"`                     // Currency of the principal
	Type             TransactionType   `json:"type" db:"type"`
	Status           TransactionStatus `json:"status" db:"status"`
	Kind             OperationKind     `json:"kind" db:"kind"`
	Channel          Channel           `json:"channel" db:"channel"`
	Reference        string            `json:"reference" db:"reference"` // Unique, doubles as idempotency key
	Description      string            `json:"description" db:"description"`
	ExternalID       string            `json:"external_id,omitempty" db:"external_id"` // Gateway payment id
	Metadata         Metadata          `json:"metadata" db:"metadata"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}

// FeeType distinguishes fee components.
type FeeType string

const (
	FeeProcessing         FeeType = "processing"
	FeeCurrencyConversion FeeType = "currency_conversion"
)

// TransactionFee is a fee charged as part of a transaction. Immutable.
type TransactionFee struct {
	FeeID         uuid.UUID       `json:"fee_id" db:"fee_id"`
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Currency      string          `json:"currency" db:"currency"`
	Type          FeeType         `json:"type" db:"fee_type"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
