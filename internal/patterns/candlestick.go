package patterns

import (
	"crypto-analytics/internal/market"
)

// PatternType represents a candlestick pattern label
type PatternType string

const (
	Doji             PatternType = "doji"
	Hammer           PatternType = "hammer"
	ShootingStar     PatternType = "shooting_star"
	BullishEngulfing PatternType = "bullish_engulfing"
	BearishEngulfing PatternType = "bearish_engulfing"
)

// DetectCandlePatterns classifies the most recent candle (and its
// predecessor for the two-candle patterns). The check order is fixed and
// every matching label is emitted; patterns are not mutually exclusive.
func DetectCandlePatterns(candles []market.Candle) []PatternType {
	if len(candles) == 0 {
		return nil
	}

	var found []PatternType
	current := candles[len(candles)-1]

	if isDoji(current) {
		found = append(found, Doji)
	}
	if isHammer(current) {
		found = append(found, Hammer)
	}
	if isShootingStar(current) {
		found = append(found, ShootingStar)
	}

	if len(candles) >= 2 {
		previous := candles[len(candles)-2]
		if isBullishEngulfing(previous, current) {
			found = append(found, BullishEngulfing)
		}
		if isBearishEngulfing(previous, current) {
			found = append(found, BearishEngulfing)
		}
	}

	return found
}

// isDoji checks for a body under 10% of the full range
func isDoji(c market.Candle) bool {
	r := c.Range()
	if r == 0 {
		return false
	}
	return c.Body()/r < 0.10
}

// isHammer checks for a long lower wick, a stunted upper wick and a
// bullish close
func isHammer(c market.Candle) bool {
	body := c.Body()
	return c.LowerWick() > body*2 && c.UpperWick() < body*0.5 && c.IsBullish()
}

// isShootingStar is the bearish mirror of the hammer
func isShootingStar(c market.Candle) bool {
	body := c.Body()
	return c.UpperWick() > body*2 && c.LowerWick() < body*0.5 && c.IsBearish()
}

// isBullishEngulfing checks that a bearish candle is followed by a bullish
// candle whose open and close straddle the prior body
func isBullishEngulfing(prev, current market.Candle) bool {
	if !prev.IsBearish() || !current.IsBullish() {
		return false
	}
	return current.Open <= prev.Close && current.Close >= prev.Open
}

// isBearishEngulfing is the mirrored downward case
func isBearishEngulfing(prev, current market.Candle) bool {
	if !prev.IsBullish() || !current.IsBearish() {
		return false
	}
	return current.Open >= prev.Close && current.Close <= prev.Open
}
