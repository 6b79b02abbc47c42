package filter

// SortField names a ChargebackRecord field the listing can be ordered by.
type SortField string

const (
	SortByDate             SortField = "date"
	SortByID               SortField = "chargeback_id"
	SortByMerchantID       SortField = "merchant_id"
	SortByMerchantName     SortField = "merchant_name"
	SortByMerchantCategory SortField = "merchant_category"
	SortByCountry          SortField = "country"
	SortByReasonCategory   SortField = "reason_category"
	SortByReasonCode       SortField = "reason_code"
	SortByPaymentMethod    SortField = "payment_method"
	SortByAmount           SortField = "amount_usd"
	SortByStatus           SortField = "status"
)

var knownSortFields = map[SortField]bool{
	SortByDate: true, SortByID: true, SortByMerchantID: true,
	SortByMerchantName: true, SortByMerchantCategory: true,
	SortByCountry: true, SortByReasonCategory: true, SortByReasonCode: true,
	SortByPaymentMethod: true, SortByAmount: true, SortByStatus: true,
}

func (f SortField) Valid() bool { return knownSortFields[f] }

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageSort describes one page of a sorted listing. Page is 1-based.
type PageSort struct {
	Page     int
	PageSize int
	SortBy   SortField
	SortDir  SortDirection
}

func (p PageSort) Validate() error {
	if p.Page < 1 {
		return &InvalidPageSpecError{Field: "page", Reason: "must be >= 1"}
	}
	if p.PageSize < 1 {
		return &InvalidPageSpecError{Field: "page_size", Reason: "must be >= 1"}
	}
	if !p.SortBy.Valid() {
		return &InvalidPageSpecError{Field: "sort_by", Reason: "unknown field " + string(p.SortBy)}
	}
	if p.SortDir != SortAsc && p.SortDir != SortDesc {
		return &InvalidPageSpecError{Field: "sort_dir", Reason: "must be asc or desc"}
	}
	return nil
}
