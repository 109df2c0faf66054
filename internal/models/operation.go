package models

// OperationKind identifies the business operation behind a money movement.
type OperationKind string

const (
	KindTransfer           OperationKind = "transfer"
	KindInvoicePayment     OperationKind = "invoice_payment"
	KindBillPayment        OperationKind = "bill_payment"
	KindRecharge           OperationKind = "recharge"
	KindLoanInstallment    OperationKind = "loan_installment"
	KindInvestmentPurchase OperationKind = "investment_purchase"
	KindInvestmentSale     OperationKind = "investment_sale"
	KindSIPInstallment     OperationKind = "sip_installment"
	KindTaxPayment         OperationKind = "tax_payment"
	KindInsurancePremium   OperationKind = "insurance_premium"
	KindCardPayment        OperationKind = "card_payment"
	KindWalletFunding      OperationKind = "wallet_funding"
	KindPayout             OperationKind = "payout"
)

var operationKinds = map[OperationKind]struct{}{
	KindTransfer:           {},
	KindInvoicePayment:     {},
	KindBillPayment:        {},
	KindRecharge:           {},
	KindLoanInstallment:    {},
	KindInvestmentPurchase: {},
	KindInvestmentSale:     {},
	KindSIPInstallment:     {},
	KindTaxPayment:         {},
	KindInsurancePremium:   {},
	KindCardPayment:        {},
	KindWalletFunding:      {},
	KindPayout:             {},
}

// Valid reports whether k is a known operation kind.
func (k OperationKind) Valid() bool {
	_, ok := operationKinds[k]
	return ok
}

// TransactionType returns the ledger transaction type recorded for k.
func (k OperationKind) TransactionType() TransactionType {
	if k == KindTransfer {
		return TypeTransfer
	}
	return TypePayment
}

// IsInbound reports whether money enters a wallet from outside the ledger.
func (k OperationKind) IsInbound() bool {
	return k == KindWalletFunding || k == KindInvestmentSale
}

// NeedsDestination reports whether the movement credits another ledger wallet.
func (k OperationKind) NeedsDestination() bool {
	return k == KindTransfer || k == KindInvoicePayment || k.IsInbound()
}

// IsPayable reports whether k may be submitted as a resource payment
// (bill, recharge, loan installment and so on).
func (k OperationKind) IsPayable() bool {
	switch k {
	case KindTransfer, KindWalletFunding, KindPayout:
		return false
	}
	return k.Valid()
}

// Channel is the rail a transaction moved over.
type Channel string

const (
	ChannelWallet Channel = "wallet"
	ChannelCard   Channel = "card"
)
