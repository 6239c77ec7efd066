package indicators

import (
	"crypto-analytics/internal/market"
)

// ============================================================================
// RSI (Relative Strength Index)
// ============================================================================

// CalculateRSI calculates the Relative Strength Index using Wilder's
// smoothing. The first period deltas seed the average gain/loss; every
// later delta is smoothed in with weight (period-1)/period. Needs at least
// period+1 candles, otherwise returns the neutral value 50. A zero average
// loss returns 100. The construction keeps the result inside [0, 100].
func CalculateRSI(candles []market.Candle, period int) float64 {
	if period <= 0 {
		period = 14
	}
	if len(candles) < period+1 {
		return 50.0
	}

	gains := 0.0
	losses := 0.0

	// Initial averages from the first period deltas
	for i := 1; i <= period; i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// Wilder smoothing over the remaining deltas
	p := float64(period)
	for i := period + 1; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		gain := 0.0
		loss := 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
	}

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// ============================================================================
// STOCHASTIC OSCILLATOR
// ============================================================================

// StochasticResult holds the smoothed %K and %D lines
type StochasticResult struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// CalculateStochastic calculates the Stochastic Oscillator. The raw %K for
// each rolling period window is (close - lowestLow) / (highestHigh -
// lowestLow) * 100, with 50 substituted on a flat range. The raw series is
// smoothed by an SMA of width kSmoothing to form the K line, and the K line
// by dSmoothing to form D. Returns {50, 50} whenever there is too little
// data to smooth.
func CalculateStochastic(candles []market.Candle, period, kSmoothing, dSmoothing int) StochasticResult {
	neutral := StochasticResult{K: 50, D: 50}

	if period <= 0 {
		period = 14
	}
	if kSmoothing <= 0 {
		kSmoothing = 3
	}
	if dSmoothing <= 0 {
		dSmoothing = 3
	}
	if len(candles) < period {
		return neutral
	}

	// Raw %K for every complete window
	raw := make([]float64, 0, len(candles)-period+1)
	for end := period; end <= len(candles); end++ {
		window := candles[end-period : end]

		highest := window[0].High
		lowest := window[0].Low
		for _, c := range window {
			if c.High > highest {
				highest = c.High
			}
			if c.Low < lowest {
				lowest = c.Low
			}
		}

		k := 50.0
		if highest != lowest {
			k = (window[len(window)-1].Close - lowest) / (highest - lowest) * 100
		}
		raw = append(raw, k)
	}

	if len(raw) < kSmoothing {
		return neutral
	}

	kLine := smoothSMA(raw, kSmoothing)
	if len(kLine) < dSmoothing {
		return neutral
	}

	dLine := smoothSMA(kLine, dSmoothing)

	return StochasticResult{
		K: kLine[len(kLine)-1],
		D: dLine[len(dLine)-1],
	}
}

// smoothSMA produces the simple moving average series of width over values.
// The output has len(values)-width+1 entries.
func smoothSMA(values []float64, width int) []float64 {
	out := make([]float64, 0, len(values)-width+1)
	for end := width; end <= len(values); end++ {
		sum := 0.0
		for _, v := range values[end-width : end] {
			sum += v
		}
		out = append(out, sum/float64(width))
	}
	return out
}
