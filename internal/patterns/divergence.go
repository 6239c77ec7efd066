package patterns

import (
	"crypto-analytics/internal/indicators"
	"crypto-analytics/internal/market"
)

// IndicatorKind selects the oscillator a divergence is measured against.
// The set is closed; DetectDivergence rejects anything else.
type IndicatorKind string

const (
	KindRSI       IndicatorKind = "rsi"
	KindMACDProxy IndicatorKind = "macd"
)

// DivergenceType classifies the four combinations of price direction and
// indicator direction between the last two bars.
type DivergenceType string

const (
	RegularBullish DivergenceType = "regular_bullish"
	RegularBearish DivergenceType = "regular_bearish"
	HiddenBullish  DivergenceType = "hidden_bullish"
	HiddenBearish  DivergenceType = "hidden_bearish"
)

// Divergence pairs the classification with the indicator that produced it
type Divergence struct {
	Type      DivergenceType `json:"type"`
	Indicator IndicatorKind  `json:"indicator"`
}

// DetectDivergence compares the direction of the last two closes against
// the direction of the chosen indicator over the same step. Opposed
// directions are regular divergences (indicator rising against a falling
// price is bullish); agreeing directions are hidden ones. Returns false
// when the series is too short for two indicator values or the kind is
// unknown.
func DetectDivergence(candles []market.Candle, kind IndicatorKind) (Divergence, bool) {
	if len(candles) < 3 {
		return Divergence{}, false
	}

	var prevInd, lastInd float64
	switch kind {
	case KindRSI:
		prevInd = indicators.CalculateRSI(candles[:len(candles)-1], 14)
		lastInd = indicators.CalculateRSI(candles, 14)
	case KindMACDProxy:
		prevInd = emaDifference(candles[:len(candles)-1])
		lastInd = emaDifference(candles)
	default:
		return Divergence{}, false
	}

	priceUp := candles[len(candles)-1].Close > candles[len(candles)-2].Close
	indicatorUp := lastInd > prevInd

	var t DivergenceType
	switch {
	case !priceUp && indicatorUp:
		t = RegularBullish
	case priceUp && !indicatorUp:
		t = RegularBearish
	case priceUp && indicatorUp:
		t = HiddenBullish
	default:
		t = HiddenBearish
	}

	return Divergence{Type: t, Indicator: kind}, true
}

// emaDifference is the MACD-style proxy: EMA(12) - EMA(26)
func emaDifference(candles []market.Candle) float64 {
	return indicators.CalculateEMA(candles, 12) - indicators.CalculateEMA(candles, 26)
}
