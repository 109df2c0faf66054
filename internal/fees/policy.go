// Package fees computes processing and currency-conversion fees for money
// movements. The policy is a pure lookup table; it never touches storage.
package fees

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ErrUnknownOperationKind is returned when no rule exists for a kind.
var ErrUnknownOperationKind = errors.New("unknown operation kind")

// ErrNegativeAmount is returned for a negative principal.
var ErrNegativeAmount = errors.New("negative amount")

// Rule describes the fees charged for one operation kind.
type Rule struct {
	ProcessingRate decimal.Decimal  // fraction of the principal, 0.015 = 1.5%
	ProcessingFlat decimal.Decimal  // flat processing fee, added to the rate part
	ConversionRate decimal.Decimal  // fraction charged when currencies differ
	MinProcessing  *decimal.Decimal // optional floor on the processing fee
	MaxProcessing  *decimal.Decimal // optional cap on the processing fee
}

// Breakdown is the result of a fee computation, already rounded to cents.
type Breakdown struct {
	Processing decimal.Decimal `json:"processing"`
	Conversion decimal.Decimal `json:"conversion"`
}

// Total returns processing + conversion.
func (b Breakdown) Total() decimal.Decimal {
	return b.Processing.Add(b.Conversion)
}

// ReversalRule describes what a compensation costs the payer.
type ReversalRule struct {
	FlatFee    decimal.Decimal // deducted from the refunded amount
	RefundFees bool            // whether the original fees are refunded too
}

// Policy is an immutable fee table.
type Policy struct {
	rules           map[models.OperationKind]Rule
	reversal        map[models.Channel]ReversalRule
	reversalForKind map[models.OperationKind]ReversalRule
}

// Option configures a Policy.
type Option func(*Policy)

// WithRule overrides the rule for kind.
func WithRule(kind models.OperationKind, rule Rule) Option {
	return func(p *Policy) {
		p.rules[kind] = rule
	}
}

// WithReversalRule overrides the reversal rule for a channel.
func WithReversalRule(channel models.Channel, rule ReversalRule) Option {
	return func(p *Policy) {
		p.reversal[channel] = rule
	}
}

// WithKindReversalRule sets a reversal rule that wins over the channel rule.
func WithKindReversalRule(kind models.OperationKind, rule ReversalRule) Option {
	return func(p *Policy) {
		p.reversalForKind[kind] = rule
	}
}

// WithCardReversalFee sets the flat fee for reversing card-backed movements.
func WithCardReversalFee(fee decimal.Decimal) Option {
	return func(p *Policy) {
		r := p.reversal[models.ChannelCard]
		r.FlatFee = fee
		p.reversal[models.ChannelCard] = r
	}
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Div(decimal.NewFromInt(100))
}

// DefaultRules returns the built-in fee table.
func DefaultRules() map[models.OperationKind]Rule {
	conv := pct("1.5")
	return map[models.OperationKind]Rule{
		models.KindTransfer:           {ConversionRate: conv},
		models.KindInvoicePayment:     {ProcessingRate: pct("2.5"), ConversionRate: pct("3")},
		models.KindBillPayment:        {ProcessingRate: pct("1.5"), ConversionRate: conv},
		models.KindCardPayment:        {ProcessingRate: pct("1.5"), ConversionRate: conv},
		models.KindRecharge:           {ProcessingFlat: decimal.RequireFromString("0.50"), ConversionRate: conv},
		models.KindLoanInstallment:    {ProcessingRate: pct("1"), ConversionRate: conv},
		models.KindInvestmentPurchase: {ProcessingRate: pct("0.5"), ConversionRate: conv},
		models.KindInvestmentSale:     {ProcessingRate: pct("0.5"), ConversionRate: conv},
		models.KindSIPInstallment:     {ProcessingRate: pct("1"), ConversionRate: conv},
		models.KindTaxPayment:         {ProcessingRate: pct("1"), ConversionRate: conv},
		models.KindInsurancePremium:   {ProcessingRate: pct("1"), ConversionRate: conv},
		models.KindWalletFunding:      {ProcessingRate: pct("2.5"), ConversionRate: conv},
		models.KindPayout:             {ProcessingFlat: decimal.RequireFromString("1.00"), ConversionRate: pct("2")},
	}
}

// NewPolicy builds a policy from the default table plus overrides.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		rules: DefaultRules(),
		reversal: map[models.Channel]ReversalRule{
			models.ChannelWallet: {FlatFee: decimal.Zero, RefundFees: true},
			models.ChannelCard:   {FlatFee: decimal.RequireFromString("0.50"), RefundFees: true},
		},
		reversalForKind: map[models.OperationKind]ReversalRule{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compute returns the fees for moving principal of the given kind from
// sourceCurrency to targetCurrency. The conversion fee applies only when the
// currencies differ. Each component is rounded half-up to 2 dp once.
func (p *Policy) Compute(
	kind models.OperationKind,
	principal decimal.Decimal,
	sourceCurrency, targetCurrency string,
) (Breakdown, error) {
	rule, ok := p.rules[kind]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %s", ErrUnknownOperationKind, kind)
	}
	if principal.IsNegative() {
		return Breakdown{}, ErrNegativeAmount
	}

	processing := principal.Mul(rule.ProcessingRate).Add(rule.ProcessingFlat)
	if rule.MinProcessing != nil && processing.LessThan(*rule.MinProcessing) {
		processing = *rule.MinProcessing
	}
	if rule.MaxProcessing != nil && processing.GreaterThan(*rule.MaxProcessing) {
		processing = *rule.MaxProcessing
	}

	conversion := decimal.Zero
	if targetCurrency != "" && !strings.EqualFold(sourceCurrency, targetCurrency) {
		conversion = principal.Mul(rule.ConversionRate)
	}

	return Breakdown{
		Processing: processing.Round(2),
		Conversion: conversion.Round(2),
	}, nil
}

// Reversal returns the compensation rule for a movement.
func (p *Policy) Reversal(kind models.OperationKind, channel models.Channel) ReversalRule {
	if r, ok := p.reversalForKind[kind]; ok {
		return r
	}
	if r, ok := p.reversal[channel]; ok {
		return r
	}
	return ReversalRule{RefundFees: true}
}
