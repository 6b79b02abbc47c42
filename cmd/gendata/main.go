// Command gendata writes a synthetic chargebacks.csv and
// transactions_daily.csv pair with the dataset's known shape: a 90-day
// window, a surge toward recent weeks, a small set of problem merchants,
// a fraud spike on M003 in the last 10 days and persistent
// product_not_received on M006.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/flashcart/chargeback-intelligence/internal/model"
)

var (
	countries      = []model.Country{model.CountryID, model.CountryPH, model.CountryTH, model.CountryVN}
	countryWeights = []float64{0.40, 0.25, 0.20, 0.15}

	reasons        = []model.ReasonCategory{model.ReasonFraud, model.ReasonNotReceived, model.ReasonNotAsDescribed, model.ReasonDuplicate, model.ReasonSubscriptionCxl}
	reasonWeights  = []float64{0.40, 0.30, 0.15, 0.08, 0.07}
	weekendWeights = []float64{0.58, 0.22, 0.12, 0.05, 0.03}

	reasonCodes = map[model.ReasonCategory][]string{
		model.ReasonFraud:           {"10.4", "10.5", "10.2"},
		model.ReasonNotReceived:     {"13.1"},
		model.ReasonNotAsDescribed:  {"13.3"},
		model.ReasonDuplicate:       {"12.6"},
		model.ReasonSubscriptionCxl: {"13.2"},
	}

	methods       = []model.PaymentMethod{model.MethodVisa, model.MethodMastercard, model.MethodGopay, model.MethodOvo, model.MethodGcash, model.MethodTruemoney, model.MethodBankTransfer}
	methodWeights = []float64{0.37, 0.23, 0.12, 0.10, 0.05, 0.03, 0.10}

	statuses      = []model.DisputeStatus{model.StatusOpen, model.StatusWon, model.StatusLost}
	statusWeights = []float64{0.45, 0.25, 0.30}

	merchantCategories = []string{
		"electronics", "accessories", "gaming", "mobile_phones",
		"fashion", "health_beauty", "home_appliances",
	}

	// M001-M008 are the problem merchants; M003 carries the fraud spike
	// and M006 the steady product_not_received pattern.
	merchantNames = []string{
		"TechZone PH", "GadgetHub ID", "GamersParadise", "MobileKing TH",
		"AccessoryWorld", "ElectroShop VN", "QuickGadgets", "PhoneMax ID",
		"DigiStore PH", "GamingGear ID", "TechMart VN", "CoolPhone TH",
		"AccessPro ID", "ElectraBuy PH", "SmartGadgets VN", "MobileHub TH",
		"GearUp PH", "TechPulse ID", "GameStop VN", "PhoneZone TH",
		"AccessHub PH", "ElectroMall ID", "SmartStore VN", "MobilePro TH",
		"GadgetPro ID", "TechGo PH", "GameWorld VN", "PhoneMart TH",
		"AccessZone ID", "ElectroGo PH", "SmartHub TH", "MobileZone VN",
		"GadgetStore ID", "TechHub PH", "GameZone VN", "PhoneHub TH",
		"AccessMart PH", "ElectroZone ID", "SmartMart VN", "MobileStore TH",
		"GadgetMall PH", "TechStore ID", "GameHub VN", "PhoneStore TH",
		"AccessStore ID", "ElectroHub PH", "SmartZone VN", "MobileGear TH",
		"GadgetZone PH", "TechMall ID", "GameMart VN", "PhonePro TH",
		"AccessGear ID", "ElectroStore PH", "SmartGear VN",
	}
)

type merchant struct {
	id       string
	name     string
	category string
}

func main() {
	outDir := flag.String("out", "data", "output directory")
	total := flag.Int("records", 1000, "number of chargeback records")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	rng := rand.New(rand.NewSource(*seed))

	merchants := make([]merchant, len(merchantNames))
	for i, name := range merchantNames {
		merchants[i] = merchant{
			id:       fmt.Sprintf("M%03d", i+1),
			name:     name,
			category: merchantCategories[rng.Intn(len(merchantCategories))],
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -89)

	records := buildRecords(rng, merchants, start, today, *total)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create output dir")
	}
	cbPath := filepath.Join(*outDir, "chargebacks.csv")
	txPath := filepath.Join(*outDir, "transactions_daily.csv")

	if err := writeChargebacks(cbPath, records); err != nil {
		log.Fatal().Err(err).Msg("write chargebacks")
	}
	volumes := deriveVolumes(rng, records)
	if err := writeVolumes(txPath, volumes); err != nil {
		log.Fatal().Err(err).Msg("write volumes")
	}

	log.Info().
		Int("chargebacks", len(records)).
		Int("volume_rows", len(volumes)).
		Str("dir", *outDir).
		Msg("dataset generated")
}

func buildRecords(rng *rand.Rand, merchants []merchant, start, today time.Time, total int) []model.ChargebackRecord {
	// Surge distribution: oldest 30 days 15%, middle 30%, recent 55%.
	periods := []struct {
		from, to time.Time
		share    float64
	}{
		{start, start.AddDate(0, 0, 29), 0.15},
		{start.AddDate(0, 0, 30), start.AddDate(0, 0, 59), 0.30},
		{start.AddDate(0, 0, 60), today, 0.55},
	}

	counts := []int{int(float64(total) * periods[0].share), int(float64(total) * periods[1].share)}
	counts = append(counts, total-counts[0]-counts[1])

	records := make([]model.ChargebackRecord, 0, total)
	for pi, p := range periods {
		for i := 0; i < counts[pi]; i++ {
			// 70% of chargebacks land on the problem merchants.
			var m merchant
			if rng.Float64() < 0.70 {
				m = merchants[rng.Intn(8)]
			} else {
				m = merchants[8+rng.Intn(len(merchants)-8)]
			}

			date := randDate(rng, p.from, p.to)
			reason := pickReason(rng, m.id, date, today)
			method := weightedChoice(rng, methods, methodWeights)

			records = append(records, model.ChargebackRecord{
				ID:               uuid.NewString(),
				Date:             date,
				MerchantID:       m.id,
				MerchantName:     m.name,
				MerchantCategory: m.category,
				Country:          weightedChoice(rng, countries, countryWeights),
				ReasonCategory:   reason,
				ReasonCode:       reasonCodes[reason][rng.Intn(len(reasonCodes[reason]))],
				PaymentMethod:    method,
				AmountUSD:        sampleAmount(rng),
				Status:           weightedChoice(rng, statuses, statusWeights),
			})
		}
	}
	return records
}

func pickReason(rng *rand.Rand, merchantID string, date, today time.Time) model.ReasonCategory {
	if merchantID == "M003" && today.Sub(date).Hours() <= 10*24 {
		return weightedChoice(rng, reasons, []float64{0.85, 0.05, 0.05, 0.03, 0.02})
	}
	if merchantID == "M006" {
		return weightedChoice(rng, reasons, []float64{0.05, 0.88, 0.04, 0.02, 0.01})
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return weightedChoice(rng, reasons, weekendWeights)
	}
	return weightedChoice(rng, reasons, reasonWeights)
}

// sampleAmount draws 5% high outliers ($200-450), 7% low tail ($8-22),
// and a lognormal bulk clipped to $20-200.
func sampleAmount(rng *rand.Rand) decimal.Decimal {
	r := rng.Float64()
	var amount float64
	switch {
	case r < 0.05:
		amount = 200 + rng.Float64()*250
	case r < 0.12:
		amount = 8 + rng.Float64()*14
	default:
		amount = math.Exp(3.70 + 0.55*rng.NormFloat64())
		amount = math.Min(math.Max(amount, 20), 200)
	}
	return decimal.NewFromFloat(amount).Round(2)
}

func weightedChoice[T any](rng *rand.Rand, values []T, weights []float64) T {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	r := rng.Float64() * sum
	for i, w := range weights {
		r -= w
		if r < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func randDate(rng *rand.Rand, from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, rng.Intn(days+1))
}

// deriveVolumes backs transaction counts out of chargeback counts so that
// problem merchants imply a ~8-14% rate and normal merchants ~1.5-3%.
func deriveVolumes(rng *rand.Rand, records []model.ChargebackRecord) []model.TransactionVolume {
	type key struct {
		date       time.Time
		merchantID string
	}
	counts := make(map[key]int)
	for _, rec := range records {
		counts[key{rec.Date, rec.MerchantID}]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].merchantID < keys[j].merchantID
	})

	volumes := make([]model.TransactionVolume, 0, len(keys))
	for _, k := range keys {
		problem := k.merchantID <= "M008"
		var rate float64
		if problem {
			rate = 0.08 + rng.Float64()*0.06
		} else {
			rate = 0.015 + rng.Float64()*0.015
		}
		cb := counts[k]
		txCount := int64(float64(cb) / rate)
		if txCount < int64(cb) {
			txCount = int64(cb)
		}
		volumes = append(volumes, model.TransactionVolume{
			Date:             k.date,
			MerchantID:       k.merchantID,
			TransactionCount: txCount,
		})
	}
	return volumes
}

func writeChargebacks(path string, records []model.ChargebackRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"chargeback_id", "chargeback_date", "merchant_id", "merchant_name",
		"merchant_category", "country", "reason_code", "category",
		"payment_method", "amount", "status",
	}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write([]string{
			rec.ID,
			rec.Date.Format(time.DateOnly),
			rec.MerchantID,
			rec.MerchantName,
			rec.MerchantCategory,
			string(rec.Country),
			rec.ReasonCode,
			string(rec.ReasonCategory),
			string(rec.PaymentMethod),
			rec.AmountUSD.StringFixed(2),
			string(rec.Status),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeVolumes(path string, volumes []model.TransactionVolume) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "merchant_id", "transactions_count"}); err != nil {
		return err
	}
	for _, v := range volumes {
		if err := w.Write([]string{
			v.Date.Format(time.DateOnly),
			v.MerchantID,
			fmt.Sprintf("%d", v.TransactionCount),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
