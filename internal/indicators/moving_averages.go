package indicators

import (
	"math"

	"crypto-analytics/internal/market"
)

// ============================================================================
// MOVING AVERAGES
// ============================================================================

// CalculateSMA calculates the Simple Moving Average of closing prices over
// the last period candles. When the series is shorter than the period it
// returns the last available close (0 for an empty series); the engine
// degrades instead of failing on short input.
func CalculateSMA(candles []market.Candle, period int) float64 {
	if len(candles) == 0 {
		return 0
	}
	if period <= 0 || len(candles) < period {
		return candles[len(candles)-1].Close
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].Close
	}

	return sum / float64(period)
}

// CalculateEMA calculates the Exponential Moving Average of closing prices.
// The EMA is seeded with the first close in the slice and updated with
// multiplier 2/(period+1). A period <= 0 defaults to the full slice length.
func CalculateEMA(candles []market.Candle, period int) float64 {
	if len(candles) == 0 {
		return 0
	}
	if period <= 0 {
		period = len(candles)
	}

	return emaValues(market.Closes(candles), period)
}

// emaValues runs the EMA recurrence over a raw value series. Shared with the
// MACD signal line, which smooths MACD values rather than closes.
func emaValues(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}

	multiplier := 2.0 / float64(period+1)
	ema := values[0]
	for i := 1; i < len(values); i++ {
		ema = (values[i] * multiplier) + (ema * (1 - multiplier))
	}

	return ema
}

// stdDevCloses computes the population standard deviation of every close in
// the slice around the given mean, dividing by divisor. Bollinger Bands pass
// their period as the divisor even when the slice is longer.
func stdDevCloses(candles []market.Candle, mean float64, divisor int) float64 {
	if len(candles) == 0 || divisor <= 0 {
		return 0
	}

	variance := 0.0
	for _, c := range candles {
		diff := c.Close - mean
		variance += diff * diff
	}

	return math.Sqrt(variance / float64(divisor))
}

// CalculateVolatility returns the coefficient of variation of the last
// period closes as a percentage: stdDev / mean * 100. Shorter series use
// every close available.
func CalculateVolatility(candles []market.Candle, period int) float64 {
	if len(candles) == 0 {
		return 0
	}
	if period <= 0 || len(candles) < period {
		period = len(candles)
	}

	window := candles[len(candles)-period:]

	mean := 0.0
	for _, c := range window {
		mean += c.Close
	}
	mean /= float64(period)
	if mean == 0 {
		return 0
	}

	sd := stdDevCloses(window, mean, period)
	return sd / mean * 100
}

// CalculateMomentum calculates the percentage price change over the last
// period candles. Returns 0 when the series is too short.
func CalculateMomentum(candles []market.Candle, period int) float64 {
	if len(candles) < period+1 {
		return 0
	}

	currentPrice := candles[len(candles)-1].Close
	pastPrice := candles[len(candles)-period-1].Close
	if pastPrice == 0 {
		return 0
	}

	return ((currentPrice - pastPrice) / pastPrice) * 100
}
