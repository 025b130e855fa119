package market

import "errors"

// Errors shared by the mapping, observation and scenario packages.
var (
	// ErrInvalidConfig is returned when a component is constructed from
	// missing or blank configuration (curve group, feed, lookup).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument is returned when a call receives an argument that
	// violates its contract: a key without a currency, an unordered or
	// mismatched index pair, an out-of-range scenario index.
	ErrInvalidArgument = errors.New("invalid argument")
)
