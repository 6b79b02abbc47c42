package service

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
	"github.com/flashcart/chargeback-intelligence/internal/model"
	"github.com/flashcart/chargeback-intelligence/internal/store"
)

// Options are the product-tunable knobs of the aggregation engine.
type Options struct {
	// RateFallbackMultiplier approximates transaction volume as
	// chargebacks*K when the volume dataset is absent. The resulting rate
	// is flagged as approximate.
	RateFallbackMultiplier int

	// TrendSentinelPct is reported when the previous period had zero
	// chargebacks but the current one has some.
	TrendSentinelPct float64

	// TrendWindowDays sizes the trend window when the filter carries no
	// date bounds. It ends at the dataset's max date.
	TrendWindowDays int

	TopMerchantsLimit int
}

func (o Options) withDefaults() Options {
	if o.RateFallbackMultiplier <= 0 {
		o.RateFallbackMultiplier = 37
	}
	if o.TrendSentinelPct == 0 {
		o.TrendSentinelPct = 100
	}
	if o.TrendWindowDays <= 0 {
		o.TrendWindowDays = 30
	}
	if o.TopMerchantsLimit <= 0 {
		o.TopMerchantsLimit = 10
	}
	return o
}

type MetricsService struct {
	store *store.Store
	opts  Options
}

func NewMetricsService(st *store.Store, opts Options) *MetricsService {
	return &MetricsService{store: st, opts: opts.withDefaults()}
}

// Breakdown is one group of a categorical dimension.
type Breakdown struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// DayBucket is one calendar day of the gap-free time series.
type DayBucket struct {
	Date   string  `json:"date"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// MerchantRanking is one top-merchants entry with its own chargeback rate.
type MerchantRanking struct {
	MerchantID   string  `json:"merchant_id"`
	MerchantName string  `json:"merchant_name"`
	Count        int     `json:"count"`
	Amount       float64 `json:"amount"`
	Rate         float64 `json:"rate"`
}

type MetricsSummary struct {
	TotalChargebacks    int               `json:"total_chargebacks"`
	TotalDisputedAmount float64           `json:"total_disputed_amount"`
	ChargebackRate      float64           `json:"chargeback_rate"`
	RateApproximate     bool              `json:"rate_approximate"`
	TrendPct            float64           `json:"trend_pct"`
	ByCategory          []Breakdown       `json:"by_category"`
	ByCountry           []Breakdown       `json:"by_country"`
	ByPaymentMethod     []Breakdown       `json:"by_payment_method"`
	ByDay               []DayBucket       `json:"by_day"`
	TopMerchants        []MerchantRanking `json:"top_merchants"`
}

// Summary filters the dataset and computes the full metrics object. An
// empty match yields zero/empty aggregates, never an error; only an
// invalid filter fails.
func (s *MetricsService) Summary(spec filter.Spec) (MetricsSummary, error) {
	if err := spec.Validate(); err != nil {
		return MetricsSummary{}, err
	}

	snap := s.store.Snapshot()
	if snap == nil {
		snap = store.NewSnapshot(nil, nil)
	}
	filtered := filter.Evaluate(snap.Records, spec)

	summary := MetricsSummary{
		TotalChargebacks: len(filtered),
		ByCategory:       make([]Breakdown, 0),
		ByCountry:        make([]Breakdown, 0),
		ByPaymentMethod:  make([]Breakdown, 0),
		ByDay:            make([]DayBucket, 0),
		TopMerchants:     make([]MerchantRanking, 0),
	}

	total := decimal.Zero
	for _, rec := range filtered {
		total = total.Add(rec.AmountUSD)
	}
	summary.TotalDisputedAmount = round2(total)

	merchantSet := s.merchantSet(snap, spec)
	summary.ChargebackRate, summary.RateApproximate = s.rate(snap, len(filtered), spec, merchantSet)
	summary.TrendPct = s.trend(snap, spec)

	summary.ByCategory = breakdownBy(filtered, func(r model.ChargebackRecord) string { return string(r.ReasonCategory) })
	summary.ByCountry = breakdownBy(filtered, func(r model.ChargebackRecord) string { return string(r.Country) })
	summary.ByPaymentMethod = breakdownBy(filtered, func(r model.ChargebackRecord) string { return string(r.PaymentMethod) })
	summary.ByDay = s.byDay(snap, filtered, spec)
	summary.TopMerchants = s.topMerchants(snap, filtered, spec)

	return summary, nil
}

// merchantSet resolves the filter's merchant token against the merchant
// directory implied by the dataset, for use as a denominator predicate.
// A nil set means no merchant restriction.
func (s *MetricsService) merchantSet(snap *store.Snapshot, spec filter.Spec) map[string]bool {
	if spec.Merchant == "" {
		return nil
	}
	only := filter.Spec{Merchant: spec.Merchant}
	set := make(map[string]bool)
	for _, rec := range snap.Records {
		if only.Matches(rec) {
			set[rec.MerchantID] = true
		}
	}
	return set
}

func (s *MetricsService) rate(snap *store.Snapshot, chargebacks int, spec filter.Spec, merchants map[string]bool) (float64, bool) {
	if !snap.HasVolumes() {
		if chargebacks == 0 {
			return 0, true
		}
		// chargebacks / (chargebacks * K) * 100 == 100 / K
		return round2f(100 / float64(s.opts.RateFallbackMultiplier)), true
	}

	volume := countVolume(snap.Volumes, spec.StartDate, spec.EndDate, merchants)
	if volume == 0 || chargebacks == 0 {
		return 0, false
	}
	return round2f(float64(chargebacks) / float64(volume) * 100), false
}

func countVolume(volumes []model.TransactionVolume, start, end *time.Time, merchants map[string]bool) int64 {
	var total int64
	for _, v := range volumes {
		if start != nil && v.Date.Before(*start) {
			continue
		}
		if end != nil && v.Date.After(*end) {
			continue
		}
		if merchants != nil && !merchants[v.MerchantID] {
			continue
		}
		total += v.TransactionCount
	}
	return total
}

// trend compares the current window's chargeback count against the
// immediately preceding window of equal length, under the same non-date
// filters. Unbounded filters default to the trailing TrendWindowDays of
// the dataset.
func (s *MetricsService) trend(snap *store.Snapshot, spec filter.Spec) float64 {
	var start, end time.Time
	switch {
	case spec.StartDate != nil && spec.EndDate != nil:
		start, end = *spec.StartDate, *spec.EndDate
	case snap.MaxDate.IsZero():
		return 0
	default:
		end = snap.MaxDate
		start = end.AddDate(0, 0, -(s.opts.TrendWindowDays - 1))
	}
	if end.Before(start) {
		return 0
	}

	periodDays := int(end.Sub(start).Hours() / 24)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := start.AddDate(0, 0, -(periodDays + 1))

	nonDate := spec
	nonDate.StartDate, nonDate.EndDate = &start, &end
	current := len(filter.Evaluate(snap.Records, nonDate))

	nonDate.StartDate, nonDate.EndDate = &prevStart, &prevEnd
	previous := len(filter.Evaluate(snap.Records, nonDate))

	if previous == 0 {
		if current == 0 {
			return 0
		}
		return s.opts.TrendSentinelPct
	}
	return round1f(float64(current-previous) / float64(previous) * 100)
}

func breakdownBy(filtered []model.ChargebackRecord, key func(model.ChargebackRecord) string) []Breakdown {
	type group struct {
		count  int
		amount decimal.Decimal
	}
	groups := make(map[string]*group)
	for _, rec := range filtered {
		k := key(rec)
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
		}
		g.count++
		g.amount = g.amount.Add(rec.AmountUSD)
	}

	out := make([]Breakdown, 0, len(groups))
	for k, g := range groups {
		out = append(out, Breakdown{Key: k, Count: g.count, Amount: round2(g.amount)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// byDay buckets the filtered subset per calendar day over the active date
// range, or the full dataset range when unbounded, with zero-count days
// filled in so the series has no gaps.
func (s *MetricsService) byDay(snap *store.Snapshot, filtered []model.ChargebackRecord, spec filter.Spec) []DayBucket {
	start, end := snap.MinDate, snap.MaxDate
	if spec.StartDate != nil {
		start = *spec.StartDate
	}
	if spec.EndDate != nil {
		end = *spec.EndDate
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return []DayBucket{}
	}

	type bucket struct {
		count  int
		amount decimal.Decimal
	}
	days := make(map[string]*bucket)
	for _, rec := range filtered {
		k := rec.Date.Format(time.DateOnly)
		b, ok := days[k]
		if !ok {
			b = &bucket{}
			days[k] = b
		}
		b.count++
		b.amount = b.amount.Add(rec.AmountUSD)
	}

	out := make([]DayBucket, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		k := d.Format(time.DateOnly)
		db := DayBucket{Date: k}
		if b, ok := days[k]; ok {
			db.Count = b.count
			db.Amount = round2(b.amount)
		}
		out = append(out, db)
	}
	return out
}

func (s *MetricsService) topMerchants(snap *store.Snapshot, filtered []model.ChargebackRecord, spec filter.Spec) []MerchantRanking {
	type group struct {
		name   string
		count  int
		amount decimal.Decimal
	}
	groups := make(map[string]*group)
	for _, rec := range filtered {
		g, ok := groups[rec.MerchantID]
		if !ok {
			g = &group{name: rec.MerchantName}
			groups[rec.MerchantID] = g
		}
		g.count++
		g.amount = g.amount.Add(rec.AmountUSD)
	}

	ranked := make([]MerchantRanking, 0, len(groups))
	for id, g := range groups {
		ranked = append(ranked, MerchantRanking{
			MerchantID:   id,
			MerchantName: g.name,
			Count:        g.count,
			Amount:       round2(g.amount),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].MerchantID < ranked[j].MerchantID
	})
	if len(ranked) > s.opts.TopMerchantsLimit {
		ranked = ranked[:s.opts.TopMerchantsLimit]
	}

	for i := range ranked {
		ranked[i].Rate, _ = s.rate(snap, ranked[i].Count, spec, map[string]bool{ranked[i].MerchantID: true})
	}
	return ranked
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func round2f(f float64) float64 { return math.Round(f*100) / 100 }
func round1f(f float64) float64 { return math.Round(f*10) / 10 }
