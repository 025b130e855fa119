// Package observation holds rate observations that reference market indices.
package observation

import (
	"fmt"
	"time"

	"github.com/meenmo/mdscenario/market"
	"github.com/meenmo/mdscenario/utils"
)

// IborInterpolated observes a rate interpolated between two IBOR indices
// fixed on the same date, typically for a stub period whose length falls
// between the two tenors.
//
// The short index always matures first from the fixing date. Values are
// only created through NewIborInterpolated and are immutable.
type IborInterpolated struct {
	shortIndex market.IborIndex
	longIndex  market.IborIndex
	fixingDate time.Time
}

// NewIborInterpolated builds the observation from two indices in either
// order, assigning the short and long roles by maturity from fixingDate.
//
// It fails if the indices differ in currency, are the same index, or mature
// on the same date.
func NewIborInterpolated(a, b market.IborIndex, fixingDate time.Time) (IborInterpolated, error) {
	if fixingDate.IsZero() {
		return IborInterpolated{}, fmt.Errorf("interpolated observation: fixing date is required: %w", market.ErrInvalidArgument)
	}
	for _, ix := range []market.IborIndex{a, b} {
		if err := ix.Validate(); err != nil {
			return IborInterpolated{}, fmt.Errorf("interpolated observation: %w", err)
		}
	}
	if a.Currency != b.Currency {
		return IborInterpolated{}, fmt.Errorf("interpolated observation: indices %s and %s differ in currency (%s, %s): %w",
			a, b, a.Currency, b.Currency, market.ErrInvalidArgument)
	}
	if a == b {
		return IborInterpolated{}, fmt.Errorf("interpolated observation: two different indices are required, got %s twice: %w",
			a, market.ErrInvalidArgument)
	}

	short, long := a, b
	if !inOrder(a, b, fixingDate) {
		short, long = b, a
	}
	if !inOrder(short, long, fixingDate) {
		return IborInterpolated{}, fmt.Errorf("interpolated observation: %s and %s mature on the same date from %s: %w",
			a, b, fixingDate.Format(utils.DateLayout), market.ErrInvalidArgument)
	}
	return IborInterpolated{shortIndex: short, longIndex: long, fixingDate: fixingDate}, nil
}

// inOrder reports whether a matures strictly before b when both fix on date.
func inOrder(a, b market.IborIndex, date time.Time) bool {
	return a.Tenor.AddTo(date).Before(b.Tenor.AddTo(date))
}

// ShortIndex returns the index with the earlier maturity.
func (o IborInterpolated) ShortIndex() market.IborIndex {
	return o.shortIndex
}

// LongIndex returns the index with the later maturity.
func (o IborInterpolated) LongIndex() market.IborIndex {
	return o.longIndex
}

// FixingDate returns the date both indices are observed on.
func (o IborInterpolated) FixingDate() time.Time {
	return o.fixingDate
}

// Indices returns the short and long index, in that order.
func (o IborInterpolated) Indices() []market.IborIndex {
	return []market.IborIndex{o.shortIndex, o.longIndex}
}

// CollectIndices adds both referenced indices to set.
func (o IborInterpolated) CollectIndices(set market.IndexSet) {
	set.Add(o.shortIndex, o.longIndex)
}

// Equal reports structural equality.
func (o IborInterpolated) Equal(other IborInterpolated) bool {
	return o.shortIndex == other.shortIndex &&
		o.longIndex == other.longIndex &&
		o.fixingDate.Equal(other.fixingDate)
}

// Weights returns the linear interpolation weights of the short and long
// index rates for a period ending on accrualEnd. Weights are proportional to
// calendar days between the two index maturities and sum to one; an end
// date outside the maturities extrapolates.
func (o IborInterpolated) Weights(accrualEnd time.Time) (shortWeight, longWeight float64) {
	shortEnd := o.shortIndex.Tenor.AddTo(o.fixingDate)
	longEnd := o.longIndex.Tenor.AddTo(o.fixingDate)
	span := float64(utils.DaysBetween(shortEnd, longEnd))
	shortWeight = float64(utils.DaysBetween(accrualEnd, longEnd)) / span
	longWeight = float64(utils.DaysBetween(shortEnd, accrualEnd)) / span
	return shortWeight, longWeight
}

func (o IborInterpolated) String() string {
	return fmt.Sprintf("IborInterpolated{short=%s, long=%s, fixingDate=%s}",
		o.shortIndex, o.longIndex, o.fixingDate.Format(utils.DateLayout))
}
