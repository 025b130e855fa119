// Package curve holds discount curves defined by discount factors at pillar dates.
package curve

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/mdscenario/utils"
)

// ErrInvalidCurve is returned when discount factors cannot form a curve.
var ErrInvalidCurve = errors.New("invalid curve")

// Curve interpolates discount factors log-linearly on an ACT/365F time axis.
// A Curve is immutable once built and safe for concurrent use.
type Curve struct {
	settlement      time.Time
	pillars         []time.Time
	discountFactors map[time.Time]float64
	curveDayCount   string
}

// NewCurveFromDFs creates a curve from explicitly provided discount factors.
//
// Every DF must be positive and no pillar may precede settlement. Dates are
// reduced to their calendar date, so two keys naming the same day are
// rejected. When settlement itself is not a pillar it is added with DF 1.0.
func NewCurveFromDFs(settlement time.Time, dfs map[time.Time]float64) (*Curve, error) {
	if settlement.IsZero() {
		return nil, fmt.Errorf("NewCurveFromDFs: settlement date is required: %w", ErrInvalidCurve)
	}
	if len(dfs) == 0 {
		return nil, fmt.Errorf("NewCurveFromDFs: no discount factors: %w", ErrInvalidCurve)
	}

	settlement = utils.CalendarDate(settlement)
	c := &Curve{
		settlement:      settlement,
		discountFactors: make(map[time.Time]float64, len(dfs)+1),
		curveDayCount:   utils.Act365F,
	}
	for raw, df := range dfs {
		t := utils.CalendarDate(raw)
		if t.Before(settlement) {
			return nil, fmt.Errorf("NewCurveFromDFs: pillar %s before settlement %s: %w",
				t.Format(utils.DateLayout), settlement.Format(utils.DateLayout), ErrInvalidCurve)
		}
		if !(df > 0) || math.IsInf(df, 0) {
			return nil, fmt.Errorf("NewCurveFromDFs: discount factor %v at %s: %w", df, t.Format(utils.DateLayout), ErrInvalidCurve)
		}
		if _, dup := c.discountFactors[t]; dup {
			return nil, fmt.Errorf("NewCurveFromDFs: pillar %s given twice: %w", t.Format(utils.DateLayout), ErrInvalidCurve)
		}
		c.discountFactors[t] = df
	}
	if _, ok := c.discountFactors[settlement]; !ok {
		c.discountFactors[settlement] = 1.0
	}

	c.pillars = make([]time.Time, 0, len(c.discountFactors))
	for t := range c.discountFactors {
		c.pillars = append(c.pillars, t)
	}
	utils.SortDates(c.pillars)
	return c, nil
}

// DF returns the discount factor at t. Between pillars the zero-forward rate
// is constant; beyond the last pillar the last forward is extended.
func (c *Curve) DF(t time.Time) float64 {
	t = utils.CalendarDate(t)
	if df, ok := c.discountFactors[t]; ok {
		return df
	}
	d1, d2, err := utils.BracketDates(t, c.pillars)
	if err != nil {
		// single pillar: settlement only
		return c.discountFactors[c.pillars[0]]
	}
	df1 := c.discountFactors[d1]
	df2 := c.discountFactors[d2]

	t1 := utils.YearFraction(c.settlement, d1, c.curveDayCount)
	t2 := utils.YearFraction(c.settlement, d2, c.curveDayCount)
	tTarget := utils.YearFraction(c.settlement, t, c.curveDayCount)

	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(tTarget-t1))
}

// ZeroRateAt returns the continuously compounded zero rate at t in percent.
func (c *Curve) ZeroRateAt(t time.Time) float64 {
	yearFrac := utils.YearFraction(c.settlement, t, c.curveDayCount)
	if yearFrac == 0 {
		return 0
	}
	return utils.RoundTo(-math.Log(c.DF(t))/yearFrac*100, 12)
}

// SimpleForward returns the simply compounded forward rate (decimal) over
// [start, end] with accrual measured in dayCount.
func (c *Curve) SimpleForward(start, end time.Time, dayCount string) (float64, error) {
	accrual := utils.YearFraction(start, end, dayCount)
	if accrual <= 0 {
		return 0, fmt.Errorf("SimpleForward: end %s not after start %s: %w",
			end.Format(utils.DateLayout), start.Format(utils.DateLayout), ErrInvalidCurve)
	}
	return (c.DF(start)/c.DF(end) - 1.0) / accrual, nil
}

// Settlement returns the curve's settlement date.
func (c *Curve) Settlement() time.Time {
	return c.settlement
}

// DayCount returns the curve's time axis day count convention.
func (c *Curve) DayCount() string {
	return c.curveDayCount
}

// PillarDFs returns a copy of the discount factors keyed by pillar date.
func (c *Curve) PillarDFs() map[time.Time]float64 {
	result := make(map[time.Time]float64, len(c.discountFactors))
	for k, v := range c.discountFactors {
		result[k] = v
	}
	return result
}

// PillarDates returns the sorted pillar dates.
func (c *Curve) PillarDates() []time.Time {
	return append([]time.Time(nil), c.pillars...)
}
