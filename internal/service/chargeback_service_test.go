package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
	"github.com/flashcart/chargeback-intelligence/internal/model"
	"github.com/flashcart/chargeback-intelligence/internal/store"
)

func listStore() *store.Store {
	records := []model.ChargebackRecord{
		rec("cb-1", "2026-06-03", "M001", "TechZone PH", model.CountryPH, model.ReasonFraud, model.MethodVisa, "50.00"),
		rec("cb-2", "2026-06-01", "M003", "GamersParadise", model.CountryID, model.ReasonFraud, model.MethodGopay, "20.00"),
		rec("cb-3", "2026-06-03", "M002", "GadgetHub ID", model.CountryID, model.ReasonDuplicate, model.MethodVisa, "30.00"),
		rec("cb-4", "2026-06-02", "M001", "TechZone PH", model.CountryPH, model.ReasonNotReceived, model.MethodOvo, "20.00"),
		rec("cb-5", "2026-06-03", "M004", "MobileKing TH", model.CountryTH, model.ReasonFraud, model.MethodVisa, "10.00"),
	}
	st := store.New()
	st.Swap(store.NewSnapshot(records, nil))
	return st
}

func pageSort(page, size int, by filter.SortField, dir filter.SortDirection) filter.PageSort {
	return filter.PageSort{Page: page, PageSize: size, SortBy: by, SortDir: dir}
}

func resultIDs(r ListResult) []string {
	out := make([]string, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.ID
	}
	return out
}

func TestChargebackList(t *testing.T) {
	svc := NewChargebackService(listStore())

	t.Run("sorts by date descending by default semantics", func(t *testing.T) {
		result, err := svc.List(filter.Spec{}, pageSort(1, 50, filter.SortByDate, filter.SortDesc))
		require.NoError(t, err)

		assert.Equal(t, 5, result.Total)
		// cb-1, cb-3, cb-5 tie on date and keep their original order.
		assert.Equal(t, []string{"cb-1", "cb-3", "cb-5", "cb-4", "cb-2"}, resultIDs(result))
	})

	t.Run("ties keep original order under both directions", func(t *testing.T) {
		asc, err := svc.List(filter.Spec{}, pageSort(1, 50, filter.SortByDate, filter.SortAsc))
		require.NoError(t, err)
		assert.Equal(t, []string{"cb-2", "cb-4", "cb-1", "cb-3", "cb-5"}, resultIDs(asc))

		desc, err := svc.List(filter.Spec{}, pageSort(1, 50, filter.SortByDate, filter.SortDesc))
		require.NoError(t, err)
		assert.Equal(t, []string{"cb-1", "cb-3", "cb-5", "cb-4", "cb-2"}, resultIDs(desc))
	})

	t.Run("sorts numerically by amount", func(t *testing.T) {
		result, err := svc.List(filter.Spec{}, pageSort(1, 50, filter.SortByAmount, filter.SortAsc))
		require.NoError(t, err)
		// cb-2 and cb-4 tie at 20.00, original order preserved.
		assert.Equal(t, []string{"cb-5", "cb-2", "cb-4", "cb-3", "cb-1"}, resultIDs(result))
	})

	t.Run("sorts lexicographically by merchant name", func(t *testing.T) {
		result, err := svc.List(filter.Spec{}, pageSort(1, 50, filter.SortByMerchantName, filter.SortAsc))
		require.NoError(t, err)
		assert.Equal(t, []string{"cb-3", "cb-2", "cb-5", "cb-1", "cb-4"}, resultIDs(result))
	})

	t.Run("paginates the sorted subset", func(t *testing.T) {
		page1, err := svc.List(filter.Spec{}, pageSort(1, 2, filter.SortByDate, filter.SortAsc))
		require.NoError(t, err)
		page2, err := svc.List(filter.Spec{}, pageSort(2, 2, filter.SortByDate, filter.SortAsc))
		require.NoError(t, err)
		page3, err := svc.List(filter.Spec{}, pageSort(3, 2, filter.SortByDate, filter.SortAsc))
		require.NoError(t, err)

		all := append(resultIDs(page1), resultIDs(page2)...)
		all = append(all, resultIDs(page3)...)
		assert.Equal(t, []string{"cb-2", "cb-4", "cb-1", "cb-3", "cb-5"}, all)
		assert.Equal(t, 5, page3.Total)
	})

	t.Run("page past the end returns empty records and the real total", func(t *testing.T) {
		result, err := svc.List(filter.Spec{}, pageSort(100, 50, filter.SortByDate, filter.SortDesc))
		require.NoError(t, err)

		assert.Empty(t, result.Records)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 100, result.Page)
		assert.Equal(t, 50, result.PageSize)
	})

	t.Run("filter applies before pagination", func(t *testing.T) {
		spec := filter.Spec{Countries: []model.Country{model.CountryID}}
		result, err := svc.List(spec, pageSort(1, 1, filter.SortByDate, filter.SortAsc))
		require.NoError(t, err)

		assert.Equal(t, 2, result.Total)
		assert.Equal(t, []string{"cb-2"}, resultIDs(result))
	})

	t.Run("invalid page spec fails", func(t *testing.T) {
		_, err := svc.List(filter.Spec{}, pageSort(0, 50, filter.SortByDate, filter.SortDesc))
		var perr *filter.InvalidPageSpecError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "page", perr.Field)
	})

	t.Run("invalid filter fails", func(t *testing.T) {
		_, err := svc.List(filter.Spec{Countries: []model.Country{"US"}}, pageSort(1, 50, filter.SortByDate, filter.SortDesc))
		var ferr *filter.InvalidFilterError
		require.ErrorAs(t, err, &ferr)
	})
}
