package structure

import (
	"math"

	"crypto-analytics/internal/market"
)

// ============================================================================
// MARKET STRUCTURE
// ============================================================================

// TrendLabel names the direction inferred from the last two swing points
type TrendLabel string

const (
	TrendUp      TrendLabel = "uptrend"
	TrendDown    TrendLabel = "downtrend"
	TrendNeutral TrendLabel = "neutral"
)

// SwingPoint is a 3-candle local price extremum
type SwingPoint struct {
	Price float64 `json:"price"`
	Index int     `json:"index"`
	Time  int64   `json:"time"`
	High  bool    `json:"high"` // swing high when true, swing low otherwise
}

// MarketStructure holds the swing analysis of a window
type MarketStructure struct {
	Trend      TrendLabel   `json:"trend"`
	Strength   float64      `json:"strength"`
	SwingHighs []SwingPoint `json:"swing_highs"`
	SwingLows  []SwingPoint `json:"swing_lows"`
}

// AnalyzeMarketStructure detects swing points and labels the trend. A swing
// high is a candle whose high exceeds both neighbors' highs; a swing low
// has a low below both neighbors' lows. First and last candles never
// qualify. The trend compares the prices of the two most recent swings in
// time order: higher means uptrend, lower means downtrend, and fewer than
// two swings means neutral. Strength is the absolute percent move from the
// first close to the last.
func AnalyzeMarketStructure(candles []market.Candle) MarketStructure {
	result := MarketStructure{Trend: TrendNeutral}
	if len(candles) == 0 {
		return result
	}

	var swings []SwingPoint
	for i := 1; i+1 < len(candles); i++ {
		c := candles[i]
		if c.High > candles[i-1].High && c.High > candles[i+1].High {
			point := SwingPoint{Price: c.High, Index: i, Time: c.Time, High: true}
			result.SwingHighs = append(result.SwingHighs, point)
			swings = append(swings, point)
		}
		if c.Low < candles[i-1].Low && c.Low < candles[i+1].Low {
			point := SwingPoint{Price: c.Low, Index: i, Time: c.Time}
			result.SwingLows = append(result.SwingLows, point)
			swings = append(swings, point)
		}
	}

	if len(swings) >= 2 {
		// swings were appended in index order, except when one candle is
		// both checked for high and low; order within a candle is high
		// first, which matches scan order
		last := swings[len(swings)-1]
		prev := swings[len(swings)-2]
		if last.Price > prev.Price {
			result.Trend = TrendUp
		} else {
			result.Trend = TrendDown
		}
	}

	first := candles[0].Close
	lastClose := candles[len(candles)-1].Close
	if first != 0 {
		result.Strength = math.Abs(lastClose-first) / first * 100
	}

	return result
}
