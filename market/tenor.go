package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/mdscenario/utils"
)

// Tenor is the period an index rate is quoted for, e.g. 3M or 1Y.
//
// Years are held as months so that 1Y and 12M compare equal. Weeks are kept
// apart from days so a tenor prints in the unit it is quoted in (91D, 13W).
type Tenor struct {
	Months int
	Weeks  int
	Days   int
}

// Common tenors.
var (
	TenorON  = Tenor{Days: 1}
	Tenor1W  = Tenor{Weeks: 1}
	Tenor1M  = Tenor{Months: 1}
	Tenor3M  = Tenor{Months: 3}
	Tenor6M  = Tenor{Months: 6}
	Tenor12M = Tenor{Months: 12}
	Tenor91D = Tenor{Days: 91}
)

// ParseTenor converts tenor strings like "1W", "3M", "10Y", "91D" to a Tenor.
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidArgument)
	}
	v, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || v <= 0 {
		return Tenor{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidArgument)
	}
	switch s[len(s)-1] {
	case 'D':
		return Tenor{Days: v}, nil
	case 'W':
		return Tenor{Weeks: v}, nil
	case 'M':
		return Tenor{Months: v}, nil
	case 'Y':
		return Tenor{Months: 12 * v}, nil
	}
	return Tenor{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidArgument)
}

// IsZero reports whether the tenor is empty.
func (t Tenor) IsZero() bool {
	return t.Months == 0 && t.Weeks == 0 && t.Days == 0
}

// AddTo returns date plus the tenor. Months are added first with EDATE
// semantics, then weeks and days. No business day adjustment is applied.
func (t Tenor) AddTo(date time.Time) time.Time {
	out := date
	if t.Months != 0 {
		out = utils.AddMonth(out, t.Months)
	}
	if days := 7*t.Weeks + t.Days; days != 0 {
		out = out.AddDate(0, 0, days)
	}
	return out
}

func (t Tenor) String() string {
	if t.IsZero() {
		return "0D"
	}
	var b strings.Builder
	if t.Months != 0 {
		if t.Months%12 == 0 && t.Weeks == 0 && t.Days == 0 {
			return strconv.Itoa(t.Months/12) + "Y"
		}
		b.WriteString(strconv.Itoa(t.Months) + "M")
	}
	if t.Weeks != 0 {
		b.WriteString(strconv.Itoa(t.Weeks) + "W")
	}
	if t.Days != 0 {
		b.WriteString(strconv.Itoa(t.Days) + "D")
	}
	return b.String()
}
