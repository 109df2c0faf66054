package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies a wallet.
type AccountType string

const (
	AccountSavings  AccountType = "savings"
	AccountChecking AccountType = "checking"
	AccountCredit   AccountType = "credit"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountSavings, AccountChecking, AccountCredit:
		return true
	}
	return false
}

// Wallet represents a wallet row in the database
type Wallet struct {
	WalletID    uuid.UUID       `json:"wallet_id" db:"wallet_id"`       // Unique wallet identifier
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`           // Identifier of the wallet's owner
	Currency    string          `json:"currency" db:"currency"`         // ISO-4217 currency code
	AccountType AccountType     `json:"account_type" db:"account_type"` // savings, checking or credit
	Balance     decimal.Decimal `json:"balance" db:"balance"`           // Current balance, never negative
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`     // Timestamp when the wallet was created
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`     // Timestamp of the last balance change
}

// CreateWalletRequest represents the JSON body for opening a wallet
// swagger:model CreateWalletRequest
type CreateWalletRequest struct {
	// Currency
	// required: true
	// example: USD
	Currency string `json:"currency"`

	// Account type
	// example: savings
	AccountType AccountType `json:"account_type"`
}

// WalletsResponse lists the wallets of the caller
// swagger:model WalletsResponse
type WalletsResponse struct {
	Wallets []Wallet `json:"wallets"`
}

// TransactionsResponse is a page of wallet history
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}
