// Package scenario provides multi-scenario market data and a view that
// derives and caches one single-scenario value per scenario index.
package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/mdscenario/market"
)

var (
	// ErrMissingData is returned when a snapshot has no value for an identifier.
	ErrMissingData = errors.New("missing market data")

	// ErrScenarioIndex is returned for a scenario index outside [0, count).
	ErrScenarioIndex = fmt.Errorf("scenario index out of range: %w", market.ErrInvalidArgument)
)

// Snapshot is the market data of a single scenario.
type Snapshot interface {
	ValuationDate() time.Time
	// Lookup returns the value stored under id. Identifiers are comparable
	// values such as mapping.DiscountFactorsID or market.FixingsID.
	Lookup(id any) (any, bool)
}

// MarketData holds the market data of a fixed number of scenarios.
type MarketData interface {
	ScenarioCount() int
	Scenario(index int) (Snapshot, error)
}

// Value returns the value stored under id in s as a T.
func Value[T any](s Snapshot, id any) (T, error) {
	var zero T
	raw, ok := s.Lookup(id)
	if !ok {
		return zero, fmt.Errorf("%v: %w", id, ErrMissingData)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%v: value is %T, want %T: %w", id, raw, zero, market.ErrInvalidArgument)
	}
	return v, nil
}

// ImmutableMarketData is an in-memory MarketData. Each identifier holds
// either one value shared by every scenario or one value per scenario.
type ImmutableMarketData struct {
	valuationDate time.Time
	count         int
	shared        map[any]any
	perScenario   map[any][]any
}

var _ MarketData = (*ImmutableMarketData)(nil)

// ScenarioCount returns the number of scenarios.
func (m *ImmutableMarketData) ScenarioCount() int {
	return m.count
}

// ValuationDate returns the date every scenario is valued on.
func (m *ImmutableMarketData) ValuationDate() time.Time {
	return m.valuationDate
}

// Scenario returns the snapshot for index.
func (m *ImmutableMarketData) Scenario(index int) (Snapshot, error) {
	if index < 0 || index >= m.count {
		return nil, fmt.Errorf("scenario %d of %d: %w", index, m.count, ErrScenarioIndex)
	}
	return snapshot{data: m, index: index}, nil
}

// IDs returns every identifier held, in no particular order.
func (m *ImmutableMarketData) IDs() []any {
	out := make([]any, 0, len(m.shared)+len(m.perScenario))
	for id := range m.shared {
		out = append(out, id)
	}
	for id := range m.perScenario {
		out = append(out, id)
	}
	return out
}

type snapshot struct {
	data  *ImmutableMarketData
	index int
}

func (s snapshot) ValuationDate() time.Time {
	return s.data.valuationDate
}

func (s snapshot) Lookup(id any) (any, bool) {
	if vs, ok := s.data.perScenario[id]; ok {
		return vs[s.index], true
	}
	v, ok := s.data.shared[id]
	return v, ok
}

// Builder assembles an ImmutableMarketData. It is not safe for concurrent use.
type Builder struct {
	valuationDate time.Time
	count         int
	shared        map[any]any
	perScenario   map[any][]any
	err           error
}

// NewBuilder starts market data for count scenarios valued on valuationDate.
func NewBuilder(valuationDate time.Time, count int) *Builder {
	return &Builder{
		valuationDate: valuationDate,
		count:         count,
		shared:        map[any]any{},
		perScenario:   map[any][]any{},
	}
}

// AddValue stores one value used by every scenario.
func (b *Builder) AddValue(id, value any) *Builder {
	delete(b.perScenario, id)
	b.shared[id] = value
	return b
}

// AddScenarioValues stores one value per scenario; len(values) must equal
// the scenario count.
func (b *Builder) AddScenarioValues(id any, values []any) *Builder {
	if len(values) != b.count {
		b.setErr(fmt.Errorf("%v: %d values for %d scenarios: %w", id, len(values), b.count, market.ErrInvalidArgument))
		return b
	}
	delete(b.shared, id)
	b.perScenario[id] = append([]any(nil), values...)
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build returns the market data or the first error recorded while building.
func (b *Builder) Build() (*ImmutableMarketData, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.count < 1 {
		return nil, fmt.Errorf("scenario count must be positive, got %d: %w", b.count, market.ErrInvalidArgument)
	}
	if b.valuationDate.IsZero() {
		return nil, fmt.Errorf("valuation date is required: %w", market.ErrInvalidArgument)
	}
	m := &ImmutableMarketData{
		valuationDate: b.valuationDate,
		count:         b.count,
		shared:        make(map[any]any, len(b.shared)),
		perScenario:   make(map[any][]any, len(b.perScenario)),
	}
	for id, v := range b.shared {
		m.shared[id] = v
	}
	for id, vs := range b.perScenario {
		m.perScenario[id] = vs
	}
	return m, nil
}
