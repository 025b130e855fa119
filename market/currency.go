package market

import (
	"fmt"
	"strings"
)

// Currency is an ISO-4217 currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
	GBP Currency = "GBP"
)

// ParseCurrency normalizes and validates a three letter code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks the code is three upper-case ASCII letters.
func (c Currency) Validate() error {
	if len(c) != 3 {
		return fmt.Errorf("currency %q: %w", string(c), ErrInvalidArgument)
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return fmt.Errorf("currency %q: %w", string(c), ErrInvalidArgument)
		}
	}
	return nil
}

func (c Currency) String() string {
	return string(c)
}
