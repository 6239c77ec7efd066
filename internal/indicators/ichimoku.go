package indicators

import (
	"crypto-analytics/internal/market"
)

// ============================================================================
// ICHIMOKU CLOUD
// ============================================================================

// IchimokuResult holds the Ichimoku Cloud component lines. ChikouValid is
// false when the series is too short to look 26 bars back.
type IchimokuResult struct {
	TenkanSen   float64 `json:"tenkan_sen"`
	KijunSen    float64 `json:"kijun_sen"`
	SenkouSpanA float64 `json:"senkou_span_a"`
	SenkouSpanB float64 `json:"senkou_span_b"`
	ChikouSpan  float64 `json:"chikou_span"`
	ChikouValid bool    `json:"chikou_valid"`
}

// CalculateIchimoku calculates the Ichimoku Cloud lines: Tenkan-sen over
// the last 9 candles, Kijun-sen over 26, Senkou Span A as their average,
// Senkou Span B over 52, and the Chikou Span as the close 26 bars back.
// Lookback windows clamp to the available history.
func CalculateIchimoku(candles []market.Candle) IchimokuResult {
	if len(candles) == 0 {
		return IchimokuResult{}
	}

	tenkan := rangeMidpoint(candles, 9)
	kijun := rangeMidpoint(candles, 26)

	result := IchimokuResult{
		TenkanSen:   tenkan,
		KijunSen:    kijun,
		SenkouSpanA: (tenkan + kijun) / 2,
		SenkouSpanB: rangeMidpoint(candles, 52),
	}

	if len(candles) > 26 {
		result.ChikouSpan = candles[len(candles)-1-26].Close
		result.ChikouValid = true
	}

	return result
}

// rangeMidpoint returns (highest high + lowest low) / 2 over the last
// period candles, clamped to the series length.
func rangeMidpoint(candles []market.Candle, period int) float64 {
	if len(candles) == 0 {
		return 0
	}
	if len(candles) < period {
		period = len(candles)
	}

	window := candles[len(candles)-period:]
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

	return (highest + lowest) / 2
}
