// Package filter holds the request-scoped filter and page/sort
// specifications and evaluates them against the loaded record set.
package filter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flashcart/chargeback-intelligence/internal/model"
)

// Spec is a parsed filter. Every field is optional; an unset field imposes
// no constraint, and an empty slice means "no restriction", not "match
// nothing". Dimensions combine with AND, values within a dimension with OR.
type Spec struct {
	StartDate *time.Time
	EndDate   *time.Time

	// Merchant matches the record's merchant_id exactly or is a
	// case-insensitive substring of merchant_id / merchant_name, so one
	// search box serves both lookup styles.
	Merchant string

	Reasons   []model.ReasonCategory
	Methods   []model.PaymentMethod
	Countries []model.Country

	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Validate rejects enum values outside the known sets and inverted amount
// bounds. Date inversion is not an error: it simply matches nothing.
func (s Spec) Validate() error {
	for _, r := range s.Reasons {
		if !r.Valid() {
			return &InvalidFilterError{Field: "reason_category", Reason: "unknown value " + string(r)}
		}
	}
	for _, m := range s.Methods {
		if !m.Valid() {
			return &InvalidFilterError{Field: "payment_method", Reason: "unknown value " + string(m)}
		}
	}
	for _, c := range s.Countries {
		if !c.Valid() {
			return &InvalidFilterError{Field: "country", Reason: "unknown value " + string(c)}
		}
	}
	if s.MinAmount != nil && s.MinAmount.IsNegative() {
		return &InvalidFilterError{Field: "min_amount", Reason: "must not be negative"}
	}
	if s.MinAmount != nil && s.MaxAmount != nil && s.MinAmount.GreaterThan(*s.MaxAmount) {
		return &InvalidFilterError{Field: "min_amount", Reason: "greater than max_amount"}
	}
	return nil
}

// Matches reports whether a single record satisfies every active criterion.
func (s Spec) Matches(rec model.ChargebackRecord) bool {
	if s.StartDate != nil && rec.Date.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && rec.Date.After(*s.EndDate) {
		return false
	}
	if s.Merchant != "" && !matchesMerchant(rec, s.Merchant) {
		return false
	}
	if len(s.Reasons) > 0 && !containsValue(s.Reasons, rec.ReasonCategory) {
		return false
	}
	if len(s.Methods) > 0 && !containsValue(s.Methods, rec.PaymentMethod) {
		return false
	}
	if len(s.Countries) > 0 && !containsValue(s.Countries, rec.Country) {
		return false
	}
	if s.MinAmount != nil && rec.AmountUSD.LessThan(*s.MinAmount) {
		return false
	}
	if s.MaxAmount != nil && rec.AmountUSD.GreaterThan(*s.MaxAmount) {
		return false
	}
	return true
}

// Evaluate returns the subset of records matching the spec, preserving the
// original relative order.
func Evaluate(records []model.ChargebackRecord, s Spec) []model.ChargebackRecord {
	out := make([]model.ChargebackRecord, 0, len(records))
	for _, rec := range records {
		if s.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesMerchant(rec model.ChargebackRecord, token string) bool {
	if rec.MerchantID == token {
		return true
	}
	lower := strings.ToLower(token)
	return strings.Contains(strings.ToLower(rec.MerchantID), lower) ||
		strings.Contains(strings.ToLower(rec.MerchantName), lower)
}

func containsValue[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
