package service

import (
	"sort"
	"strings"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
	"github.com/flashcart/chargeback-intelligence/internal/model"
	"github.com/flashcart/chargeback-intelligence/internal/store"
)

type ChargebackService struct {
	store *store.Store
}

func NewChargebackService(st *store.Store) *ChargebackService {
	return &ChargebackService{store: st}
}

// ListResult is one page of the filtered, sorted record view. Total counts
// the whole filtered subset, not the page.
type ListResult struct {
	Records  []model.ChargebackRecord
	Total    int
	Page     int
	PageSize int
}

// List filters, stably sorts and paginates. A page past the end returns an
// empty record list with the real total, not an error.
func (s *ChargebackService) List(spec filter.Spec, ps filter.PageSort) (ListResult, error) {
	if err := spec.Validate(); err != nil {
		return ListResult{}, err
	}
	if err := ps.Validate(); err != nil {
		return ListResult{}, err
	}

	snap := s.store.Snapshot()
	if snap == nil {
		snap = store.NewSnapshot(nil, nil)
	}

	filtered := filter.Evaluate(snap.Records, spec)
	sortRecords(filtered, ps.SortBy, ps.SortDir)

	result := ListResult{
		Records:  []model.ChargebackRecord{},
		Total:    len(filtered),
		Page:     ps.Page,
		PageSize: ps.PageSize,
	}

	start := (ps.Page - 1) * ps.PageSize
	if start >= len(filtered) {
		return result, nil
	}
	end := start + ps.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	result.Records = filtered[start:end]
	return result, nil
}

// sortRecords sorts in place. The sort is stable and the direction flips
// the comparison only, so equal-key records keep their relative order
// under both directions.
func sortRecords(records []model.ChargebackRecord, field filter.SortField, dir filter.SortDirection) {
	cmp := comparatorFor(field)
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if dir == filter.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func comparatorFor(field filter.SortField) func(a, b model.ChargebackRecord) int {
	switch field {
	case filter.SortByDate:
		return func(a, b model.ChargebackRecord) int { return a.Date.Compare(b.Date) }
	case filter.SortByID:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(a.ID, b.ID) }
	case filter.SortByMerchantID:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(a.MerchantID, b.MerchantID) }
	case filter.SortByMerchantName:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(a.MerchantName, b.MerchantName) }
	case filter.SortByMerchantCategory:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(a.MerchantCategory, b.MerchantCategory) }
	case filter.SortByCountry:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(string(a.Country), string(b.Country)) }
	case filter.SortByReasonCategory:
		return func(a, b model.ChargebackRecord) int {
			return strings.Compare(string(a.ReasonCategory), string(b.ReasonCategory))
		}
	case filter.SortByReasonCode:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(a.ReasonCode, b.ReasonCode) }
	case filter.SortByPaymentMethod:
		return func(a, b model.ChargebackRecord) int {
			return strings.Compare(string(a.PaymentMethod), string(b.PaymentMethod))
		}
	case filter.SortByAmount:
		return func(a, b model.ChargebackRecord) int { return a.AmountUSD.Cmp(b.AmountUSD) }
	case filter.SortByStatus:
		return func(a, b model.ChargebackRecord) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return func(a, b model.ChargebackRecord) int { return a.Date.Compare(b.Date) }
	}
}
