// Package records holds the local record set observed from the remote file
// and derives per-identity, per-month views from it.
package records

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/iudanet/weightkeeper/internal/models"
)

// Store holds the full set of records as last observed from the remote.
// Views are always recomputed from the set, never patched.
type Store struct {
	records []models.Record
	mu      sync.RWMutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll atomically swaps the whole record set.
func (s *Store) ReplaceAll(records []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = slices.Clone(records)
}

// Reset empties the store.
func (s *Store) Reset() {
	s.ReplaceAll(nil)
}

// Upsert updates the value of the record matching (date, identity) or
// appends a new record when there is no match. Later records with the same
// key are removed, so the set holds at most one record per key afterwards.
func (s *Store) Upsert(date, identity string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.RecordKey{Date: date, Identity: identity}
	kept := s.records[:0]
	found := false
	for _, r := range s.records {
		if r.Key() == key {
			if found {
				continue
			}
			r.Value = value
			found = true
		}
		kept = append(kept, r)
	}
	clear(s.records[len(kept):])
	s.records = kept

	if !found {
		s.records = append(s.records, models.Record{
			Date:     date,
			Identity: identity,
			Value:    value,
		})
	}
}

// All returns a copy of the record set in store order.
func (s *Store) All() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// FilterFor projects the records of one identity within one month into a
// day-of-month -> value mapping. Records without a value are skipped.
// When a key appears more than once the first record wins, matching Upsert.
func (s *Store) FilterFor(identity string, period models.Period) View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make(View)
	seen := make(map[models.RecordKey]bool)
	for _, r := range s.records {
		if r.Identity != identity || seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		if !r.HasValue() {
			continue
		}
		year, month, day, ok := splitDate(r.Date)
		if !ok {
			continue
		}
		if year == period.Year && month == int(period.Month) {
			view[day] = r.Value
		}
	}
	return view
}

// splitDate разбирает дату вида YYYY-MM-DD на компоненты.
// Нестрогий разбор: допускается 2026-1-5.
func splitDate(date string) (year, month, day int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var err error
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if day, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return year, month, day, true
}
