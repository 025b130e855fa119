package scenario

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/meenmo/mdscenario/market"
)

// Lookup builds the single-scenario view V from one scenario's snapshot.
//
// MarketDataView must be free of side effects and return interchangeable
// results for equivalent snapshots: concurrent first calls on a View may
// invoke it more than once for the same scenario, and only one result is kept.
type Lookup[V any] interface {
	MarketDataView(s Snapshot) (V, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc[V any] func(s Snapshot) (V, error)

func (f LookupFunc[V]) MarketDataView(s Snapshot) (V, error) {
	return f(s)
}

// View binds a Lookup to multi-scenario market data and hands out the
// derived view of each scenario, computing it on first use.
//
// Each scenario has one cache slot. A slot goes from empty to populated at
// most once and is never reset; the first value published wins and every
// caller returns that value. A failed computation leaves the slot empty.
// View is safe for concurrent use.
type View[V any] struct {
	lookup Lookup[V]
	data   MarketData
	cache  []atomic.Pointer[V]
	flight singleflight.Group
}

// NewView returns a view over data with an empty cache sized to its scenario count.
func NewView[V any](lookup Lookup[V], data MarketData) (*View[V], error) {
	if lookup == nil {
		return nil, fmt.Errorf("scenario view: lookup is required: %w", market.ErrInvalidConfig)
	}
	if data == nil {
		return nil, fmt.Errorf("scenario view: market data is required: %w", market.ErrInvalidConfig)
	}
	n := data.ScenarioCount()
	if n < 0 {
		return nil, fmt.Errorf("scenario view: negative scenario count %d: %w", n, market.ErrInvalidConfig)
	}
	return &View[V]{
		lookup: lookup,
		data:   data,
		cache:  make([]atomic.Pointer[V], n),
	}, nil
}

// WithMarketData returns a new view using the same lookup over data. The
// new view starts with an empty cache; v is not modified.
func (v *View[V]) WithMarketData(data MarketData) (*View[V], error) {
	return NewView(v.lookup, data)
}

// Lookup returns the lookup used to build scenario views.
func (v *View[V]) Lookup() Lookup[V] {
	return v.lookup
}

// MarketData returns the underlying multi-scenario data.
func (v *View[V]) MarketData() MarketData {
	return v.data
}

// ScenarioCount returns the number of scenarios; it never changes.
func (v *View[V]) ScenarioCount() int {
	return len(v.cache)
}

// Cached reports whether the view of scenario index has been published.
func (v *View[V]) Cached(index int) bool {
	return index >= 0 && index < len(v.cache) && v.cache[index].Load() != nil
}

// Scenario returns the view of scenario index, building it on first use.
func (v *View[V]) Scenario(index int) (V, error) {
	if index < 0 || index >= len(v.cache) {
		var zero V
		return zero, fmt.Errorf("scenario %d of %d: %w", index, len(v.cache), ErrScenarioIndex)
	}
	if p := v.cache[index].Load(); p != nil {
		return *p, nil
	}

	res, err, _ := v.flight.Do(strconv.Itoa(index), func() (any, error) {
		// a previous flight may have published since the fast path
		if p := v.cache[index].Load(); p != nil {
			return p, nil
		}
		built, err := v.build(index)
		if err != nil {
			return nil, err
		}
		return v.publish(index, &built), nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return *res.(*V), nil
}

// publish stores built in the slot of index unless a value is already
// there, and returns the value the slot holds afterwards.
func (v *View[V]) publish(index int, built *V) *V {
	if v.cache[index].CompareAndSwap(nil, built) {
		return built
	}
	return v.cache[index].Load()
}

func (v *View[V]) build(index int) (V, error) {
	var zero V
	snap, err := v.data.Scenario(index)
	if err != nil {
		return zero, fmt.Errorf("scenario %d: %w", index, err)
	}
	built, err := v.lookup.MarketDataView(snap)
	if err != nil {
		return zero, fmt.Errorf("scenario %d: %w", index, err)
	}
	return built, nil
}
