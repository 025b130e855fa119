package observation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mdscenario/calendar"
	"github.com/meenmo/mdscenario/market"
)

var fixing = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// euribor4W matures on the same date as EURIBOR1M when fixed on 1 February 2026.
var euribor4W = market.IborIndex{
	Name:          "EURIBOR4W",
	Currency:      market.EUR,
	Tenor:         market.Tenor{Days: 28},
	Calendar:      calendar.TARGET,
	DayCount:      "ACT/360",
	FixingLagDays: 2,
}

func TestNewIborInterpolated_OrdersIndices(t *testing.T) {
	t.Parallel()

	ab, err := NewIborInterpolated(market.EURIBOR3MIndex, market.EURIBOR6MIndex, fixing)
	require.NoError(t, err)
	ba, err := NewIborInterpolated(market.EURIBOR6MIndex, market.EURIBOR3MIndex, fixing)
	require.NoError(t, err)

	for _, o := range []IborInterpolated{ab, ba} {
		assert.Equal(t, market.EURIBOR3MIndex, o.ShortIndex())
		assert.Equal(t, market.EURIBOR6MIndex, o.LongIndex())
		assert.Equal(t, fixing, o.FixingDate())
		assert.Equal(t, []market.IborIndex{market.EURIBOR3MIndex, market.EURIBOR6MIndex}, o.Indices())
	}
	assert.True(t, ab.Equal(ba))
}

func TestNewIborInterpolated_DayAndMonthTenors(t *testing.T) {
	t.Parallel()

	// 28 days from 1 January ends before one month does.
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o, err := NewIborInterpolated(market.EURIBOR1MIndex, euribor4W, jan1)
	require.NoError(t, err)
	assert.Equal(t, euribor4W, o.ShortIndex())
	assert.Equal(t, market.EURIBOR1MIndex, o.LongIndex())
}

func TestNewIborInterpolated_Rejects(t *testing.T) {
	t.Parallel()

	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		a, b market.IborIndex
		date time.Time
	}{
		{"same index", market.EURIBOR3MIndex, market.EURIBOR3MIndex, fixing},
		{"currency mismatch", market.EURIBOR3MIndex, market.TIBOR6MIndex, fixing},
		{"equal maturity", market.EURIBOR1MIndex, euribor4W, feb1},
		{"equal maturity reversed", euribor4W, market.EURIBOR1MIndex, feb1},
		{"missing fixing date", market.EURIBOR3MIndex, market.EURIBOR6MIndex, time.Time{}},
		{"zero index", market.IborIndex{}, market.EURIBOR6MIndex, fixing},
	}
	for _, tc := range cases {
		_, err := NewIborInterpolated(tc.a, tc.b, tc.date)
		assert.ErrorIs(t, err, market.ErrInvalidArgument, tc.name)
	}
}

func TestIborInterpolated_CollectIndices(t *testing.T) {
	t.Parallel()

	o, err := NewIborInterpolated(market.USDLIBOR6MIndex, market.USDLIBOR1MIndex, fixing)
	require.NoError(t, err)

	set := market.IndexSet{}
	set.Add(market.USDLIBOR1MIndex)
	o.CollectIndices(set)

	assert.Equal(t, []market.IborIndex{market.USDLIBOR1MIndex, market.USDLIBOR6MIndex}, set.Sorted())
}

func TestIborInterpolated_Weights(t *testing.T) {
	t.Parallel()

	o, err := NewIborInterpolated(market.EURIBOR3MIndex, market.EURIBOR6MIndex, fixing)
	require.NoError(t, err)

	// 3M -> 2026-06-02, 6M -> 2026-09-02: 92 days apart.
	w1, w2 := o.Weights(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 1.0, w1, 1e-12)
	assert.InDelta(t, 0.0, w2, 1e-12)

	w1, w2 = o.Weights(time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 46.0/92.0, w1, 1e-12)
	assert.InDelta(t, 46.0/92.0, w2, 1e-12)
	assert.InDelta(t, 1.0, w1+w2, 1e-12)
}

func TestIborInterpolated_Equal(t *testing.T) {
	t.Parallel()

	a, err := NewIborInterpolated(market.EURIBOR3MIndex, market.EURIBOR6MIndex, fixing)
	require.NoError(t, err)
	b, err := NewIborInterpolated(market.EURIBOR3MIndex, market.EURIBOR6MIndex, fixing.AddDate(0, 0, 1))
	require.NoError(t, err)
	c, err := NewIborInterpolated(market.EURIBOR1MIndex, market.EURIBOR6MIndex, fixing)
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Contains(t, a.String(), "short=EURIBOR3M")
}
