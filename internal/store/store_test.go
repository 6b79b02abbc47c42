package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcart/chargeback-intelligence/internal/model"
)

const chargebackCSV = `chargeback_id,chargeback_date,merchant_id,merchant_name,merchant_category,country,reason_code,category,payment_method,amount,status
cb-1,2026-06-01T14:03:22,M001,TechZone PH,electronics,PH,10.4,fraud,visa,120.00,open
cb-2,2026-06-05,M003,GamersParadise,gaming,ID,13.1,product_not_received,gopay,45.50,won
cb-3,2026-06-10T09:00:00Z,M003,GamersParadise,gaming,ID,10.5,fraud,gopay,80.00,lost
`

const volumeCSV = `date,merchant_id,transactions_count
2026-06-01,M001,900
2026-06-05,M003,410
2026-06-10,M003,385
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cbPath := writeFile(t, dir, "chargebacks.csv", chargebackCSV)
	volPath := writeFile(t, dir, "transactions_daily.csv", volumeCSV)

	t.Run("loads both files", func(t *testing.T) {
		snap, err := Load(context.Background(), cbPath, volPath)
		require.NoError(t, err)

		require.Len(t, snap.Records, 3)
		require.Len(t, snap.Volumes, 3)
		assert.True(t, snap.HasVolumes())

		rec := snap.Records[0]
		assert.Equal(t, "cb-1", rec.ID)
		assert.Equal(t, "M001", rec.MerchantID)
		assert.Equal(t, model.CountryPH, rec.Country)
		assert.Equal(t, model.ReasonFraud, rec.ReasonCategory)
		assert.Equal(t, model.StatusOpen, rec.Status)
		assert.Equal(t, "120", rec.AmountUSD.String())

		// Timestamps collapse to UTC midnight regardless of input layout.
		for _, r := range snap.Records {
			assert.Equal(t, 0, r.Date.Hour())
			assert.Equal(t, time.UTC, r.Date.Location())
		}
	})

	t.Run("computes coverage window", func(t *testing.T) {
		snap, err := Load(context.Background(), cbPath, volPath)
		require.NoError(t, err)
		assert.Equal(t, "2026-06-01", snap.MinDate.Format(time.DateOnly))
		assert.Equal(t, "2026-06-10", snap.MaxDate.Format(time.DateOnly))
	})

	t.Run("missing volume file is not an error", func(t *testing.T) {
		snap, err := Load(context.Background(), cbPath, filepath.Join(dir, "nope.csv"))
		require.NoError(t, err)
		assert.False(t, snap.HasVolumes())
		assert.Len(t, snap.Records, 3)
	})

	t.Run("missing chargeback file is an error", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(dir, "nope.csv"), volPath)
		assert.Error(t, err)
	})

	t.Run("unknown enum value is kept", func(t *testing.T) {
		drifted := writeFile(t, dir, "drift.csv",
			"chargeback_id,chargeback_date,merchant_id,merchant_name,merchant_category,country,reason_code,category,payment_method,amount\n"+
				"cb-9,2026-06-02,M009,DigiStore PH,electronics,SG,1.1,new_reason,paylater,10.00\n")
		snap, err := Load(context.Background(), drifted, volPath)
		require.NoError(t, err)
		require.Len(t, snap.Records, 1)
		assert.Equal(t, model.Country("SG"), snap.Records[0].Country)
		assert.False(t, snap.Records[0].Country.Valid())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.csv",
			"chargeback_id,chargeback_date,merchant_id,merchant_name,merchant_category,country,reason_code,category,payment_method,amount\n"+
				"cb-9,2026-06-02,M009,DigiStore PH,electronics,ID,10.4,fraud,visa,-5.00\n")
		_, err := Load(context.Background(), bad, volPath)
		assert.Error(t, err)
	})

	t.Run("missing required column is rejected", func(t *testing.T) {
		bad := writeFile(t, dir, "nocol.csv", "chargeback_id,merchant_id\ncb-1,M001\n")
		_, err := Load(context.Background(), bad, volPath)
		assert.ErrorContains(t, err, "missing column")
	})
}

func TestStoreSwap(t *testing.T) {
	st := New()

	t.Run("not ready before first load", func(t *testing.T) {
		assert.False(t, st.Ready())
		assert.Nil(t, st.Snapshot())
		assert.Equal(t, 0, st.RecordCount())
	})

	t.Run("swap publishes a snapshot", func(t *testing.T) {
		snap := NewSnapshot([]model.ChargebackRecord{{ID: "cb-1"}}, nil)
		st.Swap(snap)
		assert.True(t, st.Ready())
		assert.Equal(t, 1, st.RecordCount())
	})

	t.Run("swap replaces the whole snapshot", func(t *testing.T) {
		st.Swap(NewSnapshot(nil, nil))
		assert.True(t, st.Ready())
		assert.Equal(t, 0, st.RecordCount())
	})
}
