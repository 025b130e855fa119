// Package mapping resolves abstract market data keys into concrete market
// data identifiers.
//
// A key says what is needed ("discount factors in USD"); an identifier also
// says where it comes from (curve group and feed). The extra information is
// fixed configuration held by the mapping.
package mapping

import (
	"fmt"
	"strings"

	"github.com/meenmo/mdscenario/market"
)

// CurveGroupName names a collection of discounting and forward curves used
// together as one market data source.
type CurveGroupName string

// Feed identifies the provider of the raw quotes a curve is built from.
type Feed string

// Mapping translates a key of type K into an identifier of type ID.
//
// Implementations are pure functions of the key and their configuration and
// are safe for concurrent use.
type Mapping[K, ID any] interface {
	IDForKey(key K) (ID, error)
}

// DiscountFactorsKey requests the discount factors of a currency.
type DiscountFactorsKey struct {
	Currency market.Currency
}

// DiscountFactorsID identifies the discount factors of a currency taken from
// a curve group and built from a feed.
type DiscountFactorsID struct {
	Currency   market.Currency
	CurveGroup CurveGroupName
	Feed       Feed
}

func (id DiscountFactorsID) String() string {
	return fmt.Sprintf("DiscountFactors[%s/%s/%s]", id.Currency, id.CurveGroup, id.Feed)
}

// DiscountFactorsMapping maps a DiscountFactorsKey to a DiscountFactorsID.
type DiscountFactorsMapping struct {
	curveGroup CurveGroupName
	feed       Feed
}

var _ Mapping[DiscountFactorsKey, DiscountFactorsID] = (*DiscountFactorsMapping)(nil)

// NewDiscountFactorsMapping returns a mapping resolving keys against the
// given curve group and feed. Both are required.
func NewDiscountFactorsMapping(group CurveGroupName, feed Feed) (*DiscountFactorsMapping, error) {
	if strings.TrimSpace(string(group)) == "" {
		return nil, fmt.Errorf("discount factors mapping: curve group is required: %w", market.ErrInvalidConfig)
	}
	if strings.TrimSpace(string(feed)) == "" {
		return nil, fmt.Errorf("discount factors mapping: feed is required: %w", market.ErrInvalidConfig)
	}
	return &DiscountFactorsMapping{curveGroup: group, feed: feed}, nil
}

// IDForKey returns the identifier carrying the key's currency and this
// mapping's curve group and feed.
func (m *DiscountFactorsMapping) IDForKey(key DiscountFactorsKey) (DiscountFactorsID, error) {
	if m == nil {
		return DiscountFactorsID{}, fmt.Errorf("discount factors mapping: nil mapping: %w", market.ErrInvalidArgument)
	}
	if key.Currency == "" {
		return DiscountFactorsID{}, fmt.Errorf("discount factors key: currency is required: %w", market.ErrInvalidArgument)
	}
	return DiscountFactorsID{
		Currency:   key.Currency,
		CurveGroup: m.curveGroup,
		Feed:       m.feed,
	}, nil
}

// CurveGroup returns the curve group discount curves are taken from.
func (m *DiscountFactorsMapping) CurveGroup() CurveGroupName {
	return m.curveGroup
}

// Feed returns the feed providing the quotes the curves are built from.
func (m *DiscountFactorsMapping) Feed() Feed {
	return m.feed
}

func (m *DiscountFactorsMapping) String() string {
	return fmt.Sprintf("DiscountFactorsMapping{curveGroup=%s, feed=%s}", m.curveGroup, m.feed)
}
