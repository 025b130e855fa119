// Package rates builds the single-scenario rates market data used to
// discount cash flows and observe IBOR rates.
package rates

import (
	"fmt"
	"sort"

	"github.com/meenmo/mdscenario/curve"
	"github.com/meenmo/mdscenario/mapping"
	"github.com/meenmo/mdscenario/market"
	"github.com/meenmo/mdscenario/scenario"
)

// DiscountMapping resolves discount factor keys to market data identifiers.
type DiscountMapping = mapping.Mapping[mapping.DiscountFactorsKey, mapping.DiscountFactorsID]

// Lookup knows which discount curves a calculation needs and where to find
// them. It builds a MarketData from one scenario's snapshot.
type Lookup struct {
	mapping    DiscountMapping
	currencies []market.Currency
}

var _ scenario.Lookup[*MarketData] = (*Lookup)(nil)

// NewLookup returns a lookup resolving the discount curves of currencies
// through m.
func NewLookup(m DiscountMapping, currencies ...market.Currency) (*Lookup, error) {
	if m == nil {
		return nil, fmt.Errorf("rates lookup: mapping is required: %w", market.ErrInvalidConfig)
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("rates lookup: at least one currency is required: %w", market.ErrInvalidConfig)
	}
	seen := make(map[market.Currency]struct{}, len(currencies))
	ccys := make([]market.Currency, 0, len(currencies))
	for _, c := range currencies {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("rates lookup: %w", err)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		ccys = append(ccys, c)
	}
	sort.Slice(ccys, func(i, j int) bool { return ccys[i] < ccys[j] })
	return &Lookup{mapping: m, currencies: ccys}, nil
}

// Currencies returns the currencies whose discount curves are resolved.
func (l *Lookup) Currencies() []market.Currency {
	return append([]market.Currency(nil), l.currencies...)
}

// DiscountFactorsID resolves the identifier of a currency's discount curve.
func (l *Lookup) DiscountFactorsID(ccy market.Currency) (mapping.DiscountFactorsID, error) {
	return l.mapping.IDForKey(mapping.DiscountFactorsKey{Currency: ccy})
}

// MarketDataView resolves every configured discount curve in s. A curve
// missing from the snapshot fails the whole view.
func (l *Lookup) MarketDataView(s scenario.Snapshot) (*MarketData, error) {
	curves := make(map[market.Currency]*curve.Curve, len(l.currencies))
	for _, ccy := range l.currencies {
		id, err := l.DiscountFactorsID(ccy)
		if err != nil {
			return nil, err
		}
		crv, err := scenario.Value[*curve.Curve](s, id)
		if err != nil {
			return nil, err
		}
		curves[ccy] = crv
	}
	return &MarketData{
		valuationDate: s.ValuationDate(),
		currencies:    l.currencies,
		curves:        curves,
		snapshot:      s,
	}, nil
}

// NewScenarioView binds l to multi-scenario data, caching one MarketData per scenario.
func NewScenarioView(l *Lookup, data scenario.MarketData) (*scenario.View[*MarketData], error) {
	if l == nil {
		return nil, fmt.Errorf("rates scenario view: lookup is required: %w", market.ErrInvalidConfig)
	}
	return scenario.NewView[*MarketData](l, data)
}
