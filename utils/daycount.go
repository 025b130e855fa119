package utils

import (
	"math"
	"time"
)

// Day count conventions understood by YearFraction.
const (
	Act360     = "ACT/360"
	Act365F    = "ACT/365F"
	Thirty360  = "30/360"
	Thirty360E = "30E/360"
)

// YearFraction computes year fraction between two dates using the specified day count convention.
// Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case Act360:
		return end.Sub(start).Hours() / 24 / 360.0
	case Thirty360E, Thirty360:
		// 30E/360: D1 and D2 are capped at 30
		d1 := min(start.Day(), 30)
		d2 := min(end.Day(), 30)
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return end.Sub(start).Hours() / 24 / 365.0
	}
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
