package rates

import (
	"fmt"
	"time"

	"github.com/meenmo/mdscenario/calendar"
	"github.com/meenmo/mdscenario/curve"
	"github.com/meenmo/mdscenario/market"
	"github.com/meenmo/mdscenario/observation"
	"github.com/meenmo/mdscenario/scenario"
	"github.com/meenmo/mdscenario/utils"
)

// MarketData is the rates market data of one scenario.
type MarketData struct {
	valuationDate time.Time
	currencies    []market.Currency
	curves        map[market.Currency]*curve.Curve
	snapshot      scenario.Snapshot
}

// ValuationDate returns the scenario's valuation date.
func (md *MarketData) ValuationDate() time.Time {
	return md.valuationDate
}

// Currencies returns the currencies with a discount curve, sorted.
func (md *MarketData) Currencies() []market.Currency {
	return append([]market.Currency(nil), md.currencies...)
}

// DiscountFactors returns the discount curve of ccy.
func (md *MarketData) DiscountFactors(ccy market.Currency) (*curve.Curve, error) {
	crv, ok := md.curves[ccy]
	if !ok {
		return nil, fmt.Errorf("discount factors %s: %w", ccy, scenario.ErrMissingData)
	}
	return crv, nil
}

// IborRate returns the rate of index fixed on fixingDate.
//
// Fixings before the valuation date come from the index's fixing series.
// On the valuation date a published fixing is used when present. Otherwise
// the rate is the simple forward of the index currency's discount curve
// from the spot date to the adjusted index maturity.
func (md *MarketData) IborRate(index market.IborIndex, fixingDate time.Time) (float64, error) {
	if !fixingDate.After(md.valuationDate) {
		rate, err := md.fixing(index, fixingDate)
		if err == nil || fixingDate.Before(md.valuationDate) {
			return rate, err
		}
	}
	crv, err := md.DiscountFactors(index.Currency)
	if err != nil {
		return 0, fmt.Errorf("forward %s: %w", index, err)
	}
	start := calendar.AddBusinessDays(index.Calendar, fixingDate, index.FixingLagDays)
	end := calendar.Adjust(index.Calendar, index.Tenor.AddTo(start))
	rate, err := crv.SimpleForward(start, end, index.DayCount)
	if err != nil {
		return 0, fmt.Errorf("forward %s: %w", index, err)
	}
	return rate, nil
}

func (md *MarketData) fixing(index market.IborIndex, date time.Time) (float64, error) {
	series, err := scenario.Value[market.FixingSeries](md.snapshot, market.FixingsID{Index: index.Name})
	if err != nil {
		return 0, fmt.Errorf("fixing %s on %s: %w", index, date.Format(utils.DateLayout), err)
	}
	rate, ok := series.RateOn(date)
	if !ok {
		return 0, fmt.Errorf("fixing %s on %s: %w", index, date.Format(utils.DateLayout), scenario.ErrMissingData)
	}
	return rate, nil
}

// InterpolatedRate returns the rate of obs for a period ending on
// accrualEnd: the short and long index rates weighted by obs.Weights.
func (md *MarketData) InterpolatedRate(obs observation.IborInterpolated, accrualEnd time.Time) (float64, error) {
	shortRate, err := md.IborRate(obs.ShortIndex(), obs.FixingDate())
	if err != nil {
		return 0, err
	}
	longRate, err := md.IborRate(obs.LongIndex(), obs.FixingDate())
	if err != nil {
		return 0, err
	}
	ws, wl := obs.Weights(accrualEnd)
	return ws*shortRate + wl*longRate, nil
}
