package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// Country is a market code from the fixed set FlashCart operates in.
type Country string

const (
	CountryID Country = "ID"
	CountryPH Country = "PH"
	CountryTH Country = "TH"
	CountryVN Country = "VN"
)

var knownCountries = map[Country]bool{
	CountryID: true, CountryPH: true, CountryTH: true, CountryVN: true,
}

func (c Country) Valid() bool { return knownCountries[c] }

// ReasonCategory is the coarse dispute reason bucket.
type ReasonCategory string

const (
	ReasonFraud           ReasonCategory = "fraud"
	ReasonNotReceived     ReasonCategory = "product_not_received"
	ReasonNotAsDescribed  ReasonCategory = "product_not_as_described"
	ReasonDuplicate       ReasonCategory = "duplicate_processing"
	ReasonSubscriptionCxl ReasonCategory = "subscription_cancelled"
)

var knownReasons = map[ReasonCategory]bool{
	ReasonFraud: true, ReasonNotReceived: true, ReasonNotAsDescribed: true,
	ReasonDuplicate: true, ReasonSubscriptionCxl: true,
}

func (r ReasonCategory) Valid() bool { return knownReasons[r] }

// PaymentMethod covers the cards, e-wallets and bank transfers seen in
// FlashCart's SEA markets.
type PaymentMethod string

const (
	MethodVisa         PaymentMethod = "visa"
	MethodMastercard   PaymentMethod = "mastercard"
	MethodGopay        PaymentMethod = "gopay"
	MethodOvo          PaymentMethod = "ovo"
	MethodGcash        PaymentMethod = "gcash"
	MethodTruemoney    PaymentMethod = "truemoney"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

var knownMethods = map[PaymentMethod]bool{
	MethodVisa: true, MethodMastercard: true, MethodGopay: true,
	MethodOvo: true, MethodGcash: true, MethodTruemoney: true,
	MethodBankTransfer: true,
}

func (m PaymentMethod) Valid() bool { return knownMethods[m] }

// DisputeStatus is display-only; it is never a filter dimension.
type DisputeStatus string

const (
	StatusOpen DisputeStatus = "open"
	StatusWon  DisputeStatus = "won"
	StatusLost DisputeStatus = "lost"
)

// ChargebackRecord is one dispute event. Records are immutable once loaded.
type ChargebackRecord struct {
	ID               string
	Date             time.Time // calendar date, UTC midnight
	MerchantID       string
	MerchantName     string
	MerchantCategory string
	Country          Country
	ReasonCategory   ReasonCategory
	ReasonCode       string
	PaymentMethod    PaymentMethod
	AmountUSD        decimal.Decimal
	Status           DisputeStatus
}

// TransactionVolume is one merchant's transaction count for one day. These
// rows are the denominator for chargeback-rate computation.
type TransactionVolume struct {
	Date             time.Time
	MerchantID       string
	TransactionCount int64
}
