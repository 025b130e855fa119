package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meenmo/mdscenario/calendar"
	"github.com/meenmo/mdscenario/utils"
)

// ReferenceIndex names a floating benchmark.
type ReferenceIndex string

const (
	ESTR       ReferenceIndex = "ESTR"
	TONAR      ReferenceIndex = "TONAR"
	SOFR       ReferenceIndex = "SOFR"
	EURIBOR1M  ReferenceIndex = "EURIBOR1M"
	EURIBOR3M  ReferenceIndex = "EURIBOR3M"
	EURIBOR6M  ReferenceIndex = "EURIBOR6M"
	EURIBOR12M ReferenceIndex = "EURIBOR12M"
	TIBOR3M    ReferenceIndex = "TIBOR3M"
	TIBOR6M    ReferenceIndex = "TIBOR6M"
	USDLIBOR1M ReferenceIndex = "USD-LIBOR-1M"
	USDLIBOR3M ReferenceIndex = "USD-LIBOR-3M"
	USDLIBOR6M ReferenceIndex = "USD-LIBOR-6M"
	CD91D      ReferenceIndex = "CD91D"
)

// IsOvernight reports whether the reference rate is an overnight index used in OIS discounting/projection.
func IsOvernight(r ReferenceIndex) bool {
	switch r {
	case ESTR, TONAR, SOFR:
		return true
	default:
		return false
	}
}

// IborIndex is a term rate index observed on a fixing date.
//
// The struct is comparable; two indices are the same index when all fields match.
type IborIndex struct {
	Name          ReferenceIndex
	Currency      Currency
	Tenor         Tenor
	Calendar      calendar.CalendarID
	DayCount      string
	FixingLagDays int
}

// Validate checks the index carries a name, a currency and a tenor, and that
// the name is not an overnight benchmark.
func (ix IborIndex) Validate() error {
	if ix.Name == "" {
		return fmt.Errorf("index: missing name: %w", ErrInvalidArgument)
	}
	if IsOvernight(ix.Name) {
		return fmt.Errorf("index %s: overnight rate is not a term index: %w", ix.Name, ErrInvalidArgument)
	}
	if err := ix.Currency.Validate(); err != nil {
		return fmt.Errorf("index %s: %w", ix.Name, err)
	}
	if ix.Tenor.IsZero() {
		return fmt.Errorf("index %s: missing tenor: %w", ix.Name, ErrInvalidArgument)
	}
	return nil
}

func (ix IborIndex) String() string {
	return string(ix.Name)
}

// Preset IBOR indices.
var (
	EURIBOR1MIndex  = IborIndex{Name: EURIBOR1M, Currency: EUR, Tenor: Tenor1M, Calendar: calendar.TARGET, DayCount: utils.Act360, FixingLagDays: 2}
	EURIBOR3MIndex  = IborIndex{Name: EURIBOR3M, Currency: EUR, Tenor: Tenor3M, Calendar: calendar.TARGET, DayCount: utils.Act360, FixingLagDays: 2}
	EURIBOR6MIndex  = IborIndex{Name: EURIBOR6M, Currency: EUR, Tenor: Tenor6M, Calendar: calendar.TARGET, DayCount: utils.Act360, FixingLagDays: 2}
	EURIBOR12MIndex = IborIndex{Name: EURIBOR12M, Currency: EUR, Tenor: Tenor12M, Calendar: calendar.TARGET, DayCount: utils.Act360, FixingLagDays: 2}
	TIBOR3MIndex    = IborIndex{Name: TIBOR3M, Currency: JPY, Tenor: Tenor3M, Calendar: calendar.JPN, DayCount: utils.Act365F, FixingLagDays: 2}
	TIBOR6MIndex    = IborIndex{Name: TIBOR6M, Currency: JPY, Tenor: Tenor6M, Calendar: calendar.JPN, DayCount: utils.Act365F, FixingLagDays: 2}
	USDLIBOR1MIndex = IborIndex{Name: USDLIBOR1M, Currency: USD, Tenor: Tenor1M, Calendar: calendar.USD, DayCount: utils.Act360, FixingLagDays: 2}
	USDLIBOR3MIndex = IborIndex{Name: USDLIBOR3M, Currency: USD, Tenor: Tenor3M, Calendar: calendar.USD, DayCount: utils.Act360, FixingLagDays: 2}
	USDLIBOR6MIndex = IborIndex{Name: USDLIBOR6M, Currency: USD, Tenor: Tenor6M, Calendar: calendar.USD, DayCount: utils.Act360, FixingLagDays: 2}
	CD91DIndex      = IborIndex{Name: CD91D, Currency: KRW, Tenor: Tenor91D, Calendar: calendar.KRW, DayCount: utils.Act365F, FixingLagDays: 1}
)

var presets = map[ReferenceIndex]IborIndex{}

func init() {
	for _, ix := range []IborIndex{
		EURIBOR1MIndex, EURIBOR3MIndex, EURIBOR6MIndex, EURIBOR12MIndex,
		TIBOR3MIndex, TIBOR6MIndex,
		USDLIBOR1MIndex, USDLIBOR3MIndex, USDLIBOR6MIndex,
		CD91DIndex,
	} {
		presets[ix.Name] = ix
	}
}

// IndexByName returns the preset index with the given name (case-insensitive).
func IndexByName(name string) (IborIndex, error) {
	ix, ok := presets[ReferenceIndex(strings.ToUpper(strings.TrimSpace(name)))]
	if !ok {
		return IborIndex{}, fmt.Errorf("unknown index %q: %w", name, ErrInvalidArgument)
	}
	return ix, nil
}

// IndexSet collects distinct indices, e.g. to find every fixing a set of
// observations depends on.
type IndexSet map[IborIndex]struct{}

// Add inserts indices into the set.
func (s IndexSet) Add(indices ...IborIndex) {
	for _, ix := range indices {
		s[ix] = struct{}{}
	}
}

// Contains reports membership.
func (s IndexSet) Contains(ix IborIndex) bool {
	_, ok := s[ix]
	return ok
}

// Sorted returns the members ordered by name.
func (s IndexSet) Sorted() []IborIndex {
	out := make([]IborIndex, 0, len(s))
	for ix := range s {
		out = append(out, ix)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
