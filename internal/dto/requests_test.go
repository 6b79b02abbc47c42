package dto

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
	"github.com/flashcart/chargeback-intelligence/internal/model"
)

func ctxWithQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseFilter(t *testing.T) {
	t.Run("empty query is an unconstrained spec", func(t *testing.T) {
		spec, err := ParseFilter(ctxWithQuery(t, ""))
		require.NoError(t, err)
		assert.Equal(t, filter.Spec{}, spec)
	})

	t.Run("parses all dimensions", func(t *testing.T) {
		spec, err := ParseFilter(ctxWithQuery(t,
			"start_date=2026-06-01&end_date=2026-06-30&merchant_id=M003"+
				"&reason_category=fraud,duplicate_processing&payment_method=gopay"+
				"&country=ID,PH&min_amount=10.50&max_amount=200"))
		require.NoError(t, err)

		require.NotNil(t, spec.StartDate)
		assert.Equal(t, "2026-06-01", spec.StartDate.Format(time.DateOnly))
		require.NotNil(t, spec.EndDate)
		assert.Equal(t, "M003", spec.Merchant)
		assert.Equal(t, []model.ReasonCategory{model.ReasonFraud, model.ReasonDuplicate}, spec.Reasons)
		assert.Equal(t, []model.PaymentMethod{model.MethodGopay}, spec.Methods)
		assert.Equal(t, []model.Country{model.CountryID, model.CountryPH}, spec.Countries)
		assert.Equal(t, "10.5", spec.MinAmount.String())
		assert.Equal(t, "200", spec.MaxAmount.String())
	})

	t.Run("list parsing trims blanks", func(t *testing.T) {
		spec, err := ParseFilter(ctxWithQuery(t, "country=ID,%20PH,,"))
		require.NoError(t, err)
		assert.Equal(t, []model.Country{model.CountryID, model.CountryPH}, spec.Countries)
	})

	t.Run("malformed date is rejected with the field name", func(t *testing.T) {
		_, err := ParseFilter(ctxWithQuery(t, "start_date=06/01/2026"))
		var ferr *filter.InvalidFilterError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "start_date", ferr.Field)
	})

	t.Run("malformed amount is rejected", func(t *testing.T) {
		_, err := ParseFilter(ctxWithQuery(t, "min_amount=ten"))
		var ferr *filter.InvalidFilterError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "min_amount", ferr.Field)
	})

	t.Run("unknown enum value is rejected", func(t *testing.T) {
		_, err := ParseFilter(ctxWithQuery(t, "country=ID,US"))
		var ferr *filter.InvalidFilterError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "country", ferr.Field)
	})
}

func TestParsePageSort(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ps, err := ParsePageSort(ctxWithQuery(t, ""))
		require.NoError(t, err)
		assert.Equal(t, filter.PageSort{Page: 1, PageSize: 50, SortBy: filter.SortByDate, SortDir: filter.SortDesc}, ps)
	})

	t.Run("explicit values", func(t *testing.T) {
		ps, err := ParsePageSort(ctxWithQuery(t, "page=3&page_size=25&sort_by=amount_usd&sort_dir=ASC"))
		require.NoError(t, err)
		assert.Equal(t, filter.PageSort{Page: 3, PageSize: 25, SortBy: filter.SortByAmount, SortDir: filter.SortAsc}, ps)
	})

	t.Run("non-integer page is rejected", func(t *testing.T) {
		_, err := ParsePageSort(ctxWithQuery(t, "page=first"))
		var perr *filter.InvalidPageSpecError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "page", perr.Field)
	})

	t.Run("page below one is rejected, not clamped", func(t *testing.T) {
		_, err := ParsePageSort(ctxWithQuery(t, "page=0"))
		var perr *filter.InvalidPageSpecError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "page", perr.Field)
	})

	t.Run("oversized page_size is rejected", func(t *testing.T) {
		_, err := ParsePageSort(ctxWithQuery(t, "page_size=1000"))
		var perr *filter.InvalidPageSpecError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "page_size", perr.Field)
	})

	t.Run("unknown sort field is rejected", func(t *testing.T) {
		_, err := ParsePageSort(ctxWithQuery(t, "sort_by=processor"))
		var perr *filter.InvalidPageSpecError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "sort_by", perr.Field)
	})
}
