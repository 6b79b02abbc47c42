// Package store owns the process-wide chargeback dataset: loaded once at
// startup, immutable afterwards. A reload swaps in a whole new snapshot so
// in-flight requests never observe a partially updated table.
package store

import (
	"sync/atomic"
	"time"

	"github.com/flashcart/chargeback-intelligence/internal/model"
)

// Snapshot is one immutable view of the dataset. Fields must not be
// mutated after construction.
type Snapshot struct {
	Records []model.ChargebackRecord
	Volumes []model.TransactionVolume

	// Coverage window of Records, zero when the dataset is empty.
	MinDate time.Time
	MaxDate time.Time
}

// NewSnapshot computes the coverage window and wraps the data.
func NewSnapshot(records []model.ChargebackRecord, volumes []model.TransactionVolume) *Snapshot {
	snap := &Snapshot{Records: records, Volumes: volumes}
	for _, rec := range records {
		if snap.MinDate.IsZero() || rec.Date.Before(snap.MinDate) {
			snap.MinDate = rec.Date
		}
		if rec.Date.After(snap.MaxDate) {
			snap.MaxDate = rec.Date
		}
	}
	return snap
}

// HasVolumes reports whether the transaction-volume companion dataset was
// loaded. Without it, rate computation degrades to a fallback heuristic.
func (s *Snapshot) HasVolumes() bool { return len(s.Volumes) > 0 }

// Store hands out the current snapshot to request handlers.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

func New() *Store { return &Store{} }

// Swap atomically publishes a new snapshot.
func (s *Store) Swap(snap *Snapshot) { s.snap.Store(snap) }

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *Snapshot { return s.snap.Load() }

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool { return s.snap.Load() != nil }

// RecordCount is the number of chargeback records in the current snapshot.
func (s *Store) RecordCount() int {
	snap := s.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.Records)
}
