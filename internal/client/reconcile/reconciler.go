// Package reconcile merges the pending local input into the record set.
package reconcile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iudanet/weightkeeper/internal/validation"
)

// ErrRejected is returned when the pending input is not a positive number
// or its date or identity cannot be stored in the file.
var ErrRejected = errors.New("input rejected")

// Upserter is the record store mutation the reconciler needs.
type Upserter interface {
	Upsert(date, identity string, value float64)
}

// Edit is the single pending local input: the raw value the user entered
// for a (date, identity) key.
type Edit struct {
	Date     string
	Identity string
	Raw      string
}

// Reconciler applies pending edits to a record store.
type Reconciler struct {
	store Upserter
}

// New creates a reconciler writing into store
func New(store Upserter) *Reconciler {
	return &Reconciler{store: store}
}

// Apply validates the edit and upserts it. A rejected edit leaves the store
// untouched. Apply is used both for the direct save and for replaying the
// edit on top of a freshly read record set after a version conflict.
func (r *Reconciler) Apply(edit Edit) error {
	if err := validation.ValidateDate(edit.Date); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	if err := validation.ValidateIdentity(edit.Identity); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	value, err := ParseValue(edit.Raw)
	if err != nil {
		return err
	}

	r.store.Upsert(edit.Date, edit.Identity, value)
	return nil
}

// ParseValue parses raw as a finite positive number.
func ParseValue(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: value is empty", ErrRejected)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrRejected, raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: value must be positive, got %s", ErrRejected, trimmed)
	}

	return value, nil
}
