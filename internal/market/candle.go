package market

import (
	"fmt"
)

// Candle represents one OHLCV bar for a fixed time bucket.
// Candles are immutable once produced; analysis code never mutates them.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// IsBullish returns true when the candle closed above its open
func (c Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish returns true when the candle closed below its open
func (c Candle) IsBearish() bool {
	return c.Close < c.Open
}

// Body returns the absolute size of the candle body
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the full high-to-low extent of the candle
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperWick returns the distance from the body top to the high
func (c Candle) UpperWick() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

// LowerWick returns the distance from the body bottom to the low
func (c Candle) LowerWick() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}
	return c.Close - c.Low
}

// Midpoint returns the middle of the candle's high-low range
func (c Candle) Midpoint() float64 {
	return (c.High + c.Low) / 2
}

// Closes extracts the close prices from a candle series
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Highs extracts the high prices from a candle series
func Highs(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low prices from a candle series
func Lows(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Volumes extracts the volumes from a candle series
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// Last returns the most recent candle. The second return value is false
// for an empty series.
func Last(candles []Candle) (Candle, bool) {
	if len(candles) == 0 {
		return Candle{}, false
	}
	return candles[len(candles)-1], true
}

// Tail returns the most recent n candles, or the whole series when it
// holds fewer than n.
func Tail(candles []Candle, n int) []Candle {
	if n <= 0 || len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}

// Validate checks the series invariants the analysis layer relies on:
// strictly non-decreasing timestamps and low <= {open, close} <= high.
// The analysis functions themselves do not validate; this is for use at
// ingestion boundaries (API handlers, file loaders).
func Validate(candles []Candle) error {
	var prevTime int64
	for i, c := range candles {
		if i > 0 && c.Time < prevTime {
			return fmt.Errorf("candle %d: time %d before previous candle %d", i, c.Time, prevTime)
		}
		prevTime = c.Time

		if c.Low > c.High {
			return fmt.Errorf("candle %d: low %.8f above high %.8f", i, c.Low, c.High)
		}
		if c.Open < c.Low || c.Open > c.High {
			return fmt.Errorf("candle %d: open %.8f outside range [%.8f, %.8f]", i, c.Open, c.Low, c.High)
		}
		if c.Close < c.Low || c.Close > c.High {
			return fmt.Errorf("candle %d: close %.8f outside range [%.8f, %.8f]", i, c.Close, c.Low, c.High)
		}
		if c.Volume < 0 {
			return fmt.Errorf("candle %d: negative volume %.8f", i, c.Volume)
		}
	}
	return nil
}
