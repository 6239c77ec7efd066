package volume

import (
	"crypto-analytics/internal/market"
)

// Delta pairs one candle's signed volume with the running cumulative total
type Delta struct {
	Time       int64   `json:"time"`
	Delta      float64 `json:"delta"`
	Cumulative float64 `json:"cumulative"`
}

// signedVolume contributes +volume for a candle that closed above its open
// and -volume otherwise.
func signedVolume(c market.Candle) float64 {
	if c.Close > c.Open {
		return c.Volume
	}
	return -c.Volume
}

// CumulativeDelta returns the running sum of signed candle volumes over the
// whole window as a single scalar.
func CumulativeDelta(candles []market.Candle) float64 {
	total := 0.0
	for _, c := range candles {
		total += signedVolume(c)
	}
	return total
}

// DeltaSeries returns the per-candle signed volume paired with its running
// cumulative total, preserving series order. The final cumulative value
// equals CumulativeDelta for the same window.
func DeltaSeries(candles []market.Candle) []Delta {
	out := make([]Delta, 0, len(candles))
	running := 0.0
	for _, c := range candles {
		d := signedVolume(c)
		running += d
		out = append(out, Delta{
			Time:       c.Time,
			Delta:      d,
			Cumulative: running,
		})
	}
	return out
}
