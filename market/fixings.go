package market

import "time"

// FixingsID identifies the historic fixing series of an index inside market data.
type FixingsID struct {
	Index ReferenceIndex
}

// FixingSeries supplies historic fixings of an index.
type FixingSeries interface {
	RateOn(date time.Time) (float64, bool)
}

// MapFixingSeries is a static map-backed series keyed by YYYY-MM-DD.
type MapFixingSeries struct {
	rates map[string]float64
}

// NewMapFixingSeries copies rates (YYYY-MM-DD -> decimal rate) into a new series.
func NewMapFixingSeries(rates map[string]float64) *MapFixingSeries {
	cp := make(map[string]float64, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return &MapFixingSeries{rates: cp}
}

func (m *MapFixingSeries) RateOn(date time.Time) (float64, bool) {
	val, ok := m.rates[date.Format("2006-01-02")]
	return val, ok
}
