// Package config holds the settings that bind scenario market data to a
// curve group and feed.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/meenmo/mdscenario/mapping"
	"github.com/meenmo/mdscenario/market"
)

// Environment variables read by Load.
const (
	EnvCurveGroup  = "MDS_CURVE_GROUP"
	EnvFeed        = "MDS_FEED"
	EnvCurrencies  = "MDS_CURRENCIES"
	EnvParallelism = "MDS_PARALLELISM"
	EnvLogLevel    = "MDS_LOG_LEVEL"
)

// Config holds market data mapping and scenario evaluation parameters.
type Config struct {
	// CurveGroup names the curve group discount curves are taken from.
	CurveGroup mapping.CurveGroupName

	// Feed names the provider of the quotes curves are built from.
	Feed mapping.Feed

	// Currencies whose discount curves every scenario view resolves.
	Currencies []market.Currency

	// Parallelism bounds concurrent scenario builds when materializing a
	// view. Zero or less means unbounded.
	Parallelism int

	// LogLevel is a logrus level name.
	LogLevel string
}

// DefaultConfig provides the values used when nothing else is configured.
// Curve group and feed have no sensible default and must be supplied.
var DefaultConfig = Config{
	Currencies:  []market.Currency{market.USD},
	Parallelism: 8,
	LogLevel:    "info",
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// Load reads the given .env files (".env" when none are named; a missing
// default file is not an error), then overlays environment variables on
// DefaultConfig and validates the result.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", strings.Join(envFiles, ","), err)
	}

	c := DefaultConfig
	c.Currencies = append([]market.Currency(nil), DefaultConfig.Currencies...)
	if v := strings.TrimSpace(os.Getenv(EnvCurveGroup)); v != "" {
		c.CurveGroup = mapping.CurveGroupName(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFeed)); v != "" {
		c.Feed = mapping.Feed(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCurrencies)); v != "" {
		ccys, err := ParseCurrencies(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCurrencies, err)
		}
		c.Currencies = ccys
	}
	if v := strings.TrimSpace(os.Getenv(EnvParallelism)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s=%q: %w", EnvParallelism, v, market.ErrInvalidConfig)
		}
		c.Parallelism = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	log.WithFields(log.Fields{
		"curveGroup":  c.CurveGroup,
		"feed":        c.Feed,
		"currencies":  c.Currencies,
		"parallelism": c.Parallelism,
	}).Debug("config loaded")
	return c, nil
}

// ParseCurrencies parses a comma separated list of currency codes.
func ParseCurrencies(list string) ([]market.Currency, error) {
	var out []market.Currency
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := market.ParseCurrency(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no currencies in %q: %w", list, market.ErrInvalidConfig)
	}
	return out, nil
}

// Validate checks the settings that do not depend on a curve group or feed.
// Those two are checked when the mapping is built.
func (c Config) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("config: at least one currency is required: %w", market.ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log level %q: %w", c.LogLevel, market.ErrInvalidConfig)
	}
	return nil
}

// Mapping builds the discount factors mapping for the configured curve group and feed.
func (c Config) Mapping() (*mapping.DiscountFactorsMapping, error) {
	return mapping.NewDiscountFactorsMapping(c.CurveGroup, c.Feed)
}

// ApplyLogLevel sets the logrus level from LogLevel.
func (c Config) ApplyLogLevel() error {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("config: log level %q: %w", c.LogLevel, market.ErrInvalidConfig)
	}
	log.SetLevel(lvl)
	return nil
}
