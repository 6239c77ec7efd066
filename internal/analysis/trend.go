// Package analysis combines the indicator, structure, volume and pattern
// layers into trend/risk classifications and the composite market summary.
package analysis

import (
	"crypto-analytics/internal/indicators"
	"crypto-analytics/internal/market"
)

// TrendClass is the combined long-horizon trend classification
type TrendClass string

const (
	TrendStrongBullish TrendClass = "Strong Bullish"
	TrendBullish       TrendClass = "Bullish"
	TrendStrongBearish TrendClass = "Strong Bearish"
	TrendBearish       TrendClass = "Bearish"
	TrendNeutral       TrendClass = "Neutral"
)

// ClassifyTrend combines close vs SMA50, close vs SMA200 and SMA50 vs
// SMA200 into one label. Strong variants are checked before weak ones, so
// a close above SMA50 with SMA50 above SMA200 is Strong Bullish even
// though the plain Bullish rule would also fire.
func ClassifyTrend(close, sma50, sma200 float64) TrendClass {
	switch {
	case close > sma50 && sma50 > sma200:
		return TrendStrongBullish
	case close > sma50:
		return TrendBullish
	case close < sma50 && sma50 < sma200:
		return TrendStrongBearish
	case close < sma50:
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// ClassifySeriesTrend applies ClassifyTrend to a candle series using its
// last close and the 50/200 SMAs.
func ClassifySeriesTrend(candles []market.Candle) TrendClass {
	last, ok := market.Last(candles)
	if !ok {
		return TrendNeutral
	}
	return ClassifyTrend(
		last.Close,
		indicators.CalculateSMA(candles, 50),
		indicators.CalculateSMA(candles, 200),
	)
}
