package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mdscenario/config"
	"github.com/meenmo/mdscenario/mapping"
)

const twoScenarioInput = `{
  "valuation_date": "2026-01-02",
  "curve_group": "USD-DSC",
  "feed": "REUTERS",
  "currencies": ["USD"],
  "dates": ["2027-01-02"],
  "scenarios": [
    {"USD": {"2031-01-02": 0.8606372362108797}},
    {"USD": {"2031-01-02": 0.7786941053394887}}
  ],
  "interpolated": {
    "index_a": "USD-LIBOR-6M",
    "index_b": "USD-LIBOR-3M",
    "fixing_date": "2026-03-02",
    "accrual_end": "2026-07-18"
  }
}`

func TestRun_TwoScenarios(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(twoScenarioInput), &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())

	var out ViewOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Empty(t, out.Error)
	assert.Equal(t, "USD-DSC", out.CurveGroup)
	assert.Equal(t, "REUTERS", out.Feed)
	assert.Equal(t, "USD-LIBOR-3M", out.ShortIndex)
	assert.Equal(t, "USD-LIBOR-6M", out.LongIndex)
	require.Len(t, out.Scenarios, 2)

	// Flat 3% and 5% continuously compounded zero curves: the 2031 pillar
	// is exp(-r*1826/365), so one year out the DF is exactly exp(-r).
	assert.InDelta(t, math.Exp(-0.03), out.Scenarios[0].DiscountFactors["USD"]["2027-01-02"], 1e-9)
	assert.InDelta(t, math.Exp(-0.05), out.Scenarios[1].DiscountFactors["USD"]["2027-01-02"], 1e-9)

	require.NotNil(t, out.Scenarios[0].InterpolatedRate)
	require.NotNil(t, out.Scenarios[1].InterpolatedRate)
	assert.InDelta(t, 0.03, *out.Scenarios[0].InterpolatedRate, 0.001)
	assert.InDelta(t, 0.05, *out.Scenarios[1].InterpolatedRate, 0.002)
}

func TestRun_MissingCurveGroup(t *testing.T) {
	t.Setenv("MDS_CURVE_GROUP", "")
	input := strings.Replace(twoScenarioInput, `"curve_group": "USD-DSC",`, "", 1)

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(input), &stdout, &stderr)
	assert.Equal(t, 1, code)

	var out ViewOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Contains(t, out.Error, "curve group is required")
}

func TestRun_MissingCurrencyCurve(t *testing.T) {
	input := strings.Replace(twoScenarioInput, `"currencies": ["USD"]`, `"currencies": ["USD", "EUR"]`, 1)

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(input), &stdout, &stderr)
	assert.Equal(t, 1, code)

	var out ViewOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Contains(t, out.Error, "missing market data")
	assert.Contains(t, out.Error, "scenario")
}

func TestRun_BadInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, strings.NewReader("{"), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "failed to parse JSON input")

	stdout.Reset()
	assert.Equal(t, 1, run(nil, strings.NewReader(`{"valuation_date": "2026-01-02"}`), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "scenarios is required")

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")

	assert.Equal(t, 2, run([]string{"-bogus"}, strings.NewReader(""), &stdout, &stderr))
}

func TestRun_MappingFromEnvironment(t *testing.T) {
	t.Setenv("MDS_CURVE_GROUP", "USD-OIS")
	t.Setenv("MDS_FEED", "BLOOMBERG")
	input := strings.Replace(twoScenarioInput, `"curve_group": "USD-DSC",`, "", 1)
	input = strings.Replace(input, `"feed": "REUTERS",`, "", 1)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(nil, strings.NewReader(input), &stdout, &stderr), stdout.String())

	var out ViewOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "USD-OIS", out.CurveGroup)
	assert.Equal(t, "BLOOMBERG", out.Feed)
	assert.Equal(t, mapping.CurveGroupName("USD-OIS"), config.GetConfig().CurveGroup)
}
