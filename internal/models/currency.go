package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a supported currency and its value in USD.
type Currency struct {
	Code      string          `json:"code" db:"code"`
	Name      string          `json:"name" db:"name"`
	RateToUSD decimal.Decimal `json:"rate_to_usd" db:"rate_to_usd"` // 1 unit = RateToUSD USD
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// RateResponse represents a successful response with a conversion rate
// swagger:model RateResponse
type RateResponse struct {
	// Base currency
	// example: USD
	Base string `json:"base"`

	// Target currency
	// example: EUR
	Target string `json:"target"`

	// Amount of target currency for one unit of base
	// example: 0.9
	Rate decimal.Decimal `json:"rate"`
}

// CurrenciesResponse lists supported currencies
// swagger:model CurrenciesResponse
type CurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}
