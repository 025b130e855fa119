package mapping

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mdscenario/market"
)

func TestDiscountFactorsMapping_IDForKey(t *testing.T) {
	t.Parallel()

	m, err := NewDiscountFactorsMapping("USD-DSC", "REUTERS")
	require.NoError(t, err)

	id, err := m.IDForKey(DiscountFactorsKey{Currency: market.USD})
	require.NoError(t, err)
	assert.Equal(t, DiscountFactorsID{Currency: market.USD, CurveGroup: "USD-DSC", Feed: "REUTERS"}, id)
	assert.Equal(t, "DiscountFactors[USD/USD-DSC/REUTERS]", id.String())
}

func TestDiscountFactorsMapping_CarriesKeyCurrency(t *testing.T) {
	t.Parallel()

	m, err := NewDiscountFactorsMapping("OIS", "BBG")
	require.NoError(t, err)

	for _, ccy := range []market.Currency{market.USD, market.EUR, market.JPY, market.KRW} {
		id, err := m.IDForKey(DiscountFactorsKey{Currency: ccy})
		require.NoError(t, err)
		assert.Equal(t, ccy, id.Currency)
		assert.Equal(t, m.CurveGroup(), id.CurveGroup)
		assert.Equal(t, m.Feed(), id.Feed)
	}
}

func TestDiscountFactorsMapping_Deterministic(t *testing.T) {
	t.Parallel()

	m, err := NewDiscountFactorsMapping("EUR-DSC", "REUTERS")
	require.NoError(t, err)
	key := DiscountFactorsKey{Currency: market.EUR}
	want, err := m.IDForKey(key)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.IDForKey(key)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestNewDiscountFactorsMapping_MissingConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		group CurveGroupName
		feed  Feed
	}{
		{"no group", "", "REUTERS"},
		{"blank group", "  ", "REUTERS"},
		{"no feed", "USD-DSC", ""},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		m, err := NewDiscountFactorsMapping(tc.group, tc.feed)
		assert.Nil(t, m, tc.name)
		assert.ErrorIs(t, err, market.ErrInvalidConfig, tc.name)
	}
}

func TestDiscountFactorsMapping_KeyWithoutCurrency(t *testing.T) {
	t.Parallel()

	m, err := NewDiscountFactorsMapping("USD-DSC", "REUTERS")
	require.NoError(t, err)

	_, err = m.IDForKey(DiscountFactorsKey{})
	assert.ErrorIs(t, err, market.ErrInvalidArgument)

	var nilMapping *DiscountFactorsMapping
	_, err = nilMapping.IDForKey(DiscountFactorsKey{Currency: market.USD})
	assert.ErrorIs(t, err, market.ErrInvalidArgument)
}
