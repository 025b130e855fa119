package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/meenmo/mdscenario/config"
	"github.com/meenmo/mdscenario/curve"
	"github.com/meenmo/mdscenario/mapping"
	"github.com/meenmo/mdscenario/market"
	"github.com/meenmo/mdscenario/observation"
	"github.com/meenmo/mdscenario/rates"
	"github.com/meenmo/mdscenario/scenario"
	"github.com/meenmo/mdscenario/utils"
)

// ViewInput defines the JSON input schema.
//
// Conventions:
// - dates are YYYY-MM-DD
// - discount factors and fixings are decimals
type ViewInput struct {
	ValuationDate string   `json:"valuation_date"`
	CurveGroup    string   `json:"curve_group"` // optional, defaults to MDS_CURVE_GROUP
	Feed          string   `json:"feed"`        // optional, defaults to MDS_FEED
	Currencies    []string `json:"currencies"`  // optional, defaults to MDS_CURRENCIES
	Dates         []string `json:"dates"`       // dates to report discount factors on

	// Scenarios holds, per scenario, currency -> date -> discount factor.
	Scenarios []map[string]map[string]float64 `json:"scenarios"`

	// Fixings holds index name -> date -> fixing, shared by all scenarios.
	Fixings map[string]map[string]float64 `json:"fixings"`

	Interpolated *InterpolatedInput `json:"interpolated"`
}

// InterpolatedInput requests an interpolated IBOR rate in every scenario.
type InterpolatedInput struct {
	IndexA     string `json:"index_a"`
	IndexB     string `json:"index_b"`
	FixingDate string `json:"fixing_date"`
	AccrualEnd string `json:"accrual_end"`
}

type ViewOutput struct {
	ValuationDate string           `json:"valuation_date,omitempty"`
	CurveGroup    string           `json:"curve_group,omitempty"`
	Feed          string           `json:"feed,omitempty"`
	ShortIndex    string           `json:"short_index,omitempty"`
	LongIndex     string           `json:"long_index,omitempty"`
	Scenarios     []ScenarioOutput `json:"scenarios,omitempty"`
	Error         string           `json:"error,omitempty"`
}

type ScenarioOutput struct {
	Scenario         int                           `json:"scenario"`
	DiscountFactors  map[string]map[string]float64 `json:"discount_factors"`
	InterpolatedRate *float64                      `json:"interpolated_rate,omitempty"`
}

// evaluate runs input against the active configuration; values present in
// the input override it for this call only.
func evaluate(input ViewInput) (*ViewOutput, error) {
	cfg := config.GetConfig()
	valuationDate, err := utils.ParseDate(input.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation_date: %v", err)
	}
	if len(input.Scenarios) == 0 {
		return nil, fmt.Errorf("scenarios is required")
	}

	if s := strings.TrimSpace(input.CurveGroup); s != "" {
		cfg.CurveGroup = mapping.CurveGroupName(s)
	}
	if s := strings.TrimSpace(input.Feed); s != "" {
		cfg.Feed = mapping.Feed(s)
	}
	if len(input.Currencies) > 0 {
		ccys, err := config.ParseCurrencies(strings.Join(input.Currencies, ","))
		if err != nil {
			return nil, fmt.Errorf("invalid currencies: %v", err)
		}
		cfg.Currencies = ccys
	}

	dfMapping, err := cfg.Mapping()
	if err != nil {
		return nil, err
	}
	lookup, err := rates.NewLookup(dfMapping, cfg.Currencies...)
	if err != nil {
		return nil, err
	}
	data, err := buildMarketData(valuationDate, input, lookup)
	if err != nil {
		return nil, err
	}
	view, err := rates.NewScenarioView(lookup, data)
	if err != nil {
		return nil, err
	}

	reportDates := make([]time.Time, 0, len(input.Dates))
	for _, s := range input.Dates {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid dates: %v", err)
		}
		reportDates = append(reportDates, d)
	}

	var (
		obs        *observation.IborInterpolated
		accrualEnd time.Time
	)
	if input.Interpolated != nil {
		o, end, err := parseInterpolated(*input.Interpolated)
		if err != nil {
			return nil, err
		}
		obs, accrualEnd = &o, end
	}

	started := time.Now()
	views, err := view.Materialize(context.Background(), cfg.Parallelism)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"scenarios":   view.ScenarioCount(),
		"parallelism": cfg.Parallelism,
	}).Debugf("materialized scenario views in %d ms", time.Since(started).Milliseconds())

	out := &ViewOutput{
		ValuationDate: valuationDate.Format(utils.DateLayout),
		CurveGroup:    string(dfMapping.CurveGroup()),
		Feed:          string(dfMapping.Feed()),
		Scenarios:     make([]ScenarioOutput, 0, len(views)),
	}
	if obs != nil {
		out.ShortIndex = obs.ShortIndex().String()
		out.LongIndex = obs.LongIndex().String()
	}
	for i, md := range views {
		so := ScenarioOutput{Scenario: i, DiscountFactors: map[string]map[string]float64{}}
		for _, ccy := range md.Currencies() {
			crv, err := md.DiscountFactors(ccy)
			if err != nil {
				return nil, fmt.Errorf("scenario %d: %w", i, err)
			}
			dfs := make(map[string]float64, len(reportDates))
			for _, d := range reportDates {
				dfs[d.Format(utils.DateLayout)] = crv.DF(d)
			}
			so.DiscountFactors[string(ccy)] = dfs
		}
		if obs != nil {
			rate, err := md.InterpolatedRate(*obs, accrualEnd)
			if err != nil {
				return nil, fmt.Errorf("scenario %d: %w", i, err)
			}
			so.InterpolatedRate = &rate
		}
		out.Scenarios = append(out.Scenarios, so)
	}
	return out, nil
}

// buildMarketData stores each scenario's curves under the identifiers the
// lookup resolves, so the input does not need to spell out group or feed.
func buildMarketData(valuationDate time.Time, input ViewInput, lookup *rates.Lookup) (*scenario.ImmutableMarketData, error) {
	n := len(input.Scenarios)
	b := scenario.NewBuilder(valuationDate, n)

	byCurrency := map[market.Currency][]any{}
	for i, sc := range input.Scenarios {
		for code, nodes := range sc {
			ccy, err := market.ParseCurrency(code)
			if err != nil {
				return nil, fmt.Errorf("scenario %d: %v", i, err)
			}
			dfs := make(map[time.Time]float64, len(nodes))
			for ds, df := range nodes {
				d, err := utils.ParseDate(ds)
				if err != nil {
					return nil, fmt.Errorf("scenario %d %s: %v", i, ccy, err)
				}
				dfs[d] = df
			}
			crv, err := curve.NewCurveFromDFs(valuationDate, dfs)
			if err != nil {
				return nil, fmt.Errorf("scenario %d %s: %w", i, ccy, err)
			}
			if _, ok := byCurrency[ccy]; !ok {
				byCurrency[ccy] = make([]any, n)
			}
			byCurrency[ccy][i] = crv
		}
	}

	ccys := make([]market.Currency, 0, len(byCurrency))
	for ccy := range byCurrency {
		ccys = append(ccys, ccy)
	}
	sort.Slice(ccys, func(i, j int) bool { return ccys[i] < ccys[j] })
	for _, ccy := range ccys {
		curves := byCurrency[ccy]
		if missing := firstNil(curves); missing >= 0 {
			// Leave the currency absent from every scenario; a lookup that
			// needs it fails with the scenario index.
			log.WithField("currency", ccy).Warnf("no curve in scenario %d, currency dropped", missing)
			continue
		}
		id, err := lookup.DiscountFactorsID(ccy)
		if err != nil {
			return nil, err
		}
		b.AddScenarioValues(id, curves)
	}

	for name, series := range input.Fixings {
		ix, err := market.IndexByName(name)
		if err != nil {
			return nil, fmt.Errorf("fixings: %v", err)
		}
		b.AddValue(market.FixingsID{Index: ix.Name}, market.NewMapFixingSeries(series))
	}
	return b.Build()
}

func firstNil(vs []any) int {
	for i, v := range vs {
		if v == nil {
			return i
		}
	}
	return -1
}

func parseInterpolated(in InterpolatedInput) (observation.IborInterpolated, time.Time, error) {
	a, err := market.IndexByName(in.IndexA)
	if err != nil {
		return observation.IborInterpolated{}, time.Time{}, fmt.Errorf("invalid index_a: %v", err)
	}
	b, err := market.IndexByName(in.IndexB)
	if err != nil {
		return observation.IborInterpolated{}, time.Time{}, fmt.Errorf("invalid index_b: %v", err)
	}
	fixing, err := utils.ParseDate(in.FixingDate)
	if err != nil {
		return observation.IborInterpolated{}, time.Time{}, fmt.Errorf("invalid fixing_date: %v", err)
	}
	end, err := utils.ParseDate(in.AccrualEnd)
	if err != nil {
		return observation.IborInterpolated{}, time.Time{}, fmt.Errorf("invalid accrual_end: %v", err)
	}
	obs, err := observation.NewIborInterpolated(a, b, fixing)
	if err != nil {
		return observation.IborInterpolated{}, time.Time{}, err
	}
	return obs, end, nil
}
