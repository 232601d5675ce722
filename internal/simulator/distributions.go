package simulator

import (
	"math/rand"
)

const (
	peakWindow       = 1    // hours either side of peakHour that count as peak
	peakOrderShare   = 0.4  // share of avgDailyOrders in a peak hour
	offPeakShare     = 0.05 // share of avgDailyOrders outside the peak
	orderJitter      = 0.5  // total width of the multiplicative jitter on hourly orders
	revenueJitterMin = 0.8
	revenueJitterMax = 1.2
	maxStockOutItems = 3
)

// uniform draws from [min, max).
func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func isPeakHour(hour, peakHour int) bool {
	d := hour - peakHour
	return d >= -peakWindow && d <= peakWindow
}

// baseHourlyOrders is the expected volume for an hour before jitter.
func baseHourlyOrders(avgDailyOrders, hour, peakHour int) float64 {
	if isPeakHour(hour, peakHour) {
		return float64(avgDailyOrders) * peakOrderShare
	}
	return float64(avgDailyOrders) * offPeakShare
}

// jitterOrders applies +/-25% around base.
func jitterOrders(rng *rand.Rand, base float64) float64 {
	return base + (rng.Float64()-0.5)*base*orderJitter
}
