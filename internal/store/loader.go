package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/flashcart/chargeback-intelligence/internal/model"
)

// Load reads both CSV files concurrently and builds a snapshot. The
// transaction-volume file is optional: a missing file is logged and rate
// computation degrades to the fallback heuristic.
func Load(ctx context.Context, chargebackPath, volumePath string) (*Snapshot, error) {
	var (
		records []model.ChargebackRecord
		volumes []model.TransactionVolume
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = loadChargebacks(chargebackPath)
		return err
	})
	g.Go(func() error {
		var err error
		volumes, err = loadVolumes(volumePath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := NewSnapshot(records, volumes)
	log.Info().
		Int("records", len(records)).
		Int("volume_rows", len(volumes)).
		Time("min_date", snap.MinDate).
		Time("max_date", snap.MaxDate).
		Msg("dataset loaded")
	return snap, nil
}

func loadChargebacks(path string) ([]model.ChargebackRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chargebacks: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read chargebacks header: %w", err)
	}
	col := indexColumns(header)

	// The loader accepts both the raw export headers and the normalized
	// ones (chargeback_date/date, amount/amount_usd, category/reason_category).
	idCol, err := col.require("chargeback_id")
	if err != nil {
		return nil, err
	}
	dateCol, err := col.requireAny("chargeback_date", "date")
	if err != nil {
		return nil, err
	}
	amountCol, err := col.requireAny("amount", "amount_usd")
	if err != nil {
		return nil, err
	}
	reasonCol, err := col.requireAny("category", "reason_category")
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"merchant_id", "merchant_name", "merchant_category", "country", "payment_method", "reason_code"} {
		if _, err := col.require(name); err != nil {
			return nil, err
		}
	}

	var records []model.ChargebackRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chargebacks row %d: %w", line, err)
		}

		date, err := parseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("chargebacks row %d: %w", line, err)
		}
		amount, err := decimal.NewFromString(row[amountCol])
		if err != nil {
			return nil, fmt.Errorf("chargebacks row %d: amount %q: %w", line, row[amountCol], err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("chargebacks row %d: negative amount %s", line, amount)
		}

		rec := model.ChargebackRecord{
			ID:               row[idCol],
			Date:             date,
			MerchantID:       row[col["merchant_id"]],
			MerchantName:     row[col["merchant_name"]],
			MerchantCategory: row[col["merchant_category"]],
			Country:          model.Country(row[col["country"]]),
			ReasonCategory:   model.ReasonCategory(row[reasonCol]),
			ReasonCode:       row[col["reason_code"]],
			PaymentMethod:    model.PaymentMethod(row[col["payment_method"]]),
			AmountUSD:        amount,
		}
		if statusCol, ok := col["status"]; ok {
			rec.Status = model.DisputeStatus(row[statusCol])
		}

		// Values outside the known sets are kept so breakdowns never
		// silently drop rows; the warning surfaces schema drift.
		if !rec.Country.Valid() || !rec.ReasonCategory.Valid() || !rec.PaymentMethod.Valid() {
			log.Warn().
				Str("chargeback_id", rec.ID).
				Str("country", string(rec.Country)).
				Str("reason_category", string(rec.ReasonCategory)).
				Str("payment_method", string(rec.PaymentMethod)).
				Msg("record carries value outside the known enum sets")
		}

		records = append(records, rec)
	}
	return records, nil
}

func loadVolumes(path string) ([]model.TransactionVolume, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("transaction volume file missing, chargeback rate will be approximated")
			return nil, nil
		}
		return nil, fmt.Errorf("open volumes: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read volumes header: %w", err)
	}
	col := indexColumns(header)

	dateCol, err := col.require("date")
	if err != nil {
		return nil, err
	}
	merchantCol, err := col.require("merchant_id")
	if err != nil {
		return nil, err
	}
	countCol, err := col.requireAny("transactions_count", "transaction_count")
	if err != nil {
		return nil, err
	}

	var volumes []model.TransactionVolume
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read volumes row %d: %w", line, err)
		}

		date, err := parseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("volumes row %d: %w", line, err)
		}
		count, err := strconv.ParseInt(row[countCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("volumes row %d: transactions_count %q: %w", line, row[countCol], err)
		}

		volumes = append(volumes, model.TransactionVolume{
			Date:             date,
			MerchantID:       row[merchantCol],
			TransactionCount: count,
		})
	}
	return volumes, nil
}

type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	col := make(columnIndex, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func (c columnIndex) require(name string) (int, error) {
	i, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("missing column %q", name)
	}
	return i, nil
}

func (c columnIndex) requireAny(names ...string) (int, error) {
	for _, name := range names {
		if i, ok := c[name]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", names[0])
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
