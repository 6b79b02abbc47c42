package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
	"github.com/flashcart/chargeback-intelligence/internal/model"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// ParseFilter builds a filter.Spec from query parameters. Dates arrive as
// ISO calendar dates, multi-valued dimensions as comma-separated lists,
// amounts as decimal strings.
func ParseFilter(c *gin.Context) (filter.Spec, error) {
	var spec filter.Spec

	var err error
	if spec.StartDate, err = parseDateParam(c, "start_date"); err != nil {
		return filter.Spec{}, err
	}
	if spec.EndDate, err = parseDateParam(c, "end_date"); err != nil {
		return filter.Spec{}, err
	}

	spec.Merchant = strings.TrimSpace(c.Query("merchant_id"))

	for _, v := range parseList(c.Query("reason_category")) {
		spec.Reasons = append(spec.Reasons, model.ReasonCategory(v))
	}
	for _, v := range parseList(c.Query("payment_method")) {
		spec.Methods = append(spec.Methods, model.PaymentMethod(v))
	}
	for _, v := range parseList(c.Query("country")) {
		spec.Countries = append(spec.Countries, model.Country(v))
	}

	if spec.MinAmount, err = parseAmountParam(c, "min_amount"); err != nil {
		return filter.Spec{}, err
	}
	if spec.MaxAmount, err = parseAmountParam(c, "max_amount"); err != nil {
		return filter.Spec{}, err
	}

	if err := spec.Validate(); err != nil {
		return filter.Spec{}, err
	}
	return spec, nil
}

// ParsePageSort builds a filter.PageSort with the documented defaults:
// page 1, page_size 50, sort by date descending.
func ParsePageSort(c *gin.Context) (filter.PageSort, error) {
	ps := filter.PageSort{
		Page:     1,
		PageSize: DefaultPageSize,
		SortBy:   filter.SortField(c.DefaultQuery("sort_by", string(filter.SortByDate))),
		SortDir:  filter.SortDirection(strings.ToLower(c.DefaultQuery("sort_dir", string(filter.SortDesc)))),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter.PageSort{}, &filter.InvalidPageSpecError{Field: "page", Reason: "not an integer"}
		}
		ps.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter.PageSort{}, &filter.InvalidPageSpecError{Field: "page_size", Reason: "not an integer"}
		}
		ps.PageSize = size
	}
	if ps.PageSize > MaxPageSize {
		return filter.PageSort{}, &filter.InvalidPageSpecError{Field: "page_size", Reason: "exceeds maximum of " + strconv.Itoa(MaxPageSize)}
	}

	if err := ps.Validate(); err != nil {
		return filter.PageSort{}, err
	}
	return ps, nil
}

func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, &filter.InvalidFilterError{Field: name, Reason: "expected YYYY-MM-DD"}
	}
	t = t.UTC()
	return &t, nil
}

func parseAmountParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &filter.InvalidFilterError{Field: name, Reason: "not a decimal number"}
	}
	return &d, nil
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
