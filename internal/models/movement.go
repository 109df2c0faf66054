package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest represents the JSON body for a wallet to wallet transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Source wallet
	// required: true
	SourceWalletID uuid.UUID `json:"source_wallet_id"`

	// Destination wallet
	// required: true
	DestinationWalletID uuid.UUID `json:"destination_wallet_id"`

	// Amount in the source wallet currency
	// required: true
	// example: 50.00
	Amount decimal.Decimal `json:"amount"`

	// Currency of the amount
	// required: true
	// example: USD
	Currency string `json:"currency"`

	// Idempotency key, reused as transaction reference
	// example: 3f1c0b7e-transfer-1
	IdempotencyKey string `json:"idempotency_key"`

	// Free text
	Description string `json:"description"`
}

// PaymentRequest represents the JSON body for a resource payment
// (bill, recharge, loan installment, investment, tax, insurance, invoice...)
// swagger:model PaymentRequest
type PaymentRequest struct {
	// Paying wallet. Omitted for investment sales.
	SourceWalletID *uuid.UUID `json:"source_wallet_id,omitempty"`

	// Receiving wallet. Required for invoice payments and investment sales.
	DestinationWalletID *uuid.UUID `json:"destination_wallet_id,omitempty"`

	// Biller id, loan id, policy number, invoice number...
	// required: true
	// example: ELEC-2231
	CounterpartyRef string `json:"counterparty_ref"`

	// Amount
	// required: true
	// example: 100.00
	Amount decimal.Decimal `json:"amount"`

	// Currency of the amount
	// required: true
	// example: USD
	Currency string `json:"currency"`

	// Currency the counterparty is settled in
	// example: EUR
	TargetCurrency string `json:"target_currency,omitempty"`

	IdempotencyKey string   `json:"idempotency_key"`
	Description    string   `json:"description"`
	Metadata       Metadata `json:"metadata,omitempty"`
}

// FundWalletRequest represents the JSON body for a card funded top-up
// swagger:model FundWalletRequest
type FundWalletRequest struct {
	// Authorised gateway payment id
	// required: true
	// example: pay_29QQoUBi66xm2f
	PaymentToken string `json:"payment_token"`

	// Amount charged on the card
	// required: true
	// example: 200.00
	Amount decimal.Decimal `json:"amount"`

	// Currency of the charge
	// required: true
	// example: USD
	Currency string `json:"currency"`

	IdempotencyKey string `json:"idempotency_key"`
}

// PayoutRequest represents the JSON body for a withdrawal to a bank account
// swagger:model PayoutRequest
type PayoutRequest struct {
	// required: true
	SourceWalletID uuid.UUID `json:"source_wallet_id"`

	// Destination bank account reference
	// required: true
	// example: ACC-00991
	BankAccount string `json:"bank_account"`

	// required: true
	// example: 75.00
	Amount decimal.Decimal `json:"amount"`

	// required: true
	// example: USD
	Currency string `json:"currency"`

	// example: INR
	TargetCurrency string `json:"target_currency,omitempty"`

	IdempotencyKey string `json:"idempotency_key"`
}

// ConfirmPayoutRequest carries the gateway outcome of a pending payout
// swagger:model ConfirmPayoutRequest
type ConfirmPayoutRequest struct {
	// required: true
	Success bool `json:"success"`

	// Gateway payout id
	ExternalID string `json:"external_id"`

	// Failure reason reported by the gateway
	Reason string `json:"reason"`
}

// MovementResponse represents the outcome of a money movement
// swagger:model MovementResponse
type MovementResponse struct {
	Transaction    Transaction      `json:"transaction"`
	Fees           []TransactionFee `json:"fees"`
	TotalDebit     decimal.Decimal  `json:"total_debit"`
	CreditedAmount decimal.Decimal  `json:"credited_amount"`
	Rate           decimal.Decimal  `json:"rate"`
	Record         *PaymentRecord   `json:"record,omitempty"`
	Replayed       bool             `json:"replayed"`
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: insufficient funds
	Error string `json:"error"`
	// Set on internal errors
	RequestID string `json:"request_id,omitempty"`
}

// LedgerEvent is published after a movement or reversal commits.
type LedgerEvent struct {
	EventType        string            `json:"event_type"`
	TransactionID    uuid.UUID         `json:"transaction_id"`
	Reference        string            `json:"reference"`
	Kind             OperationKind     `json:"kind"`
	Type             TransactionType   `json:"type"`
	Status           TransactionStatus `json:"status"`
	Amount           decimal.Decimal   `json:"amount"`
	Currency         string            `json:"currency"`
	FeeTotal         decimal.Decimal   `json:"fee_total"`
	SenderWalletID   uuid.NullUUID     `json:"sender_wallet_id"`
	ReceiverWalletID uuid.NullUUID     `json:"receiver_wallet_id"`
	OccurredAt       time.Time         `json:"occurred_at"`
}

// Ledger event types.
const (
	EventTransactionCompleted = "transaction.completed"
	EventTransactionPending   = "transaction.pending"
	EventTransactionFailed    = "transaction.failed"
	EventTransactionRefunded  = "transaction.refunded"
)

// GatewayReceipt is what the card gateway reports for a charge or refund.
type GatewayReceipt struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}
