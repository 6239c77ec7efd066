package structure

import (
	"math"

	"crypto-analytics/internal/market"
)

// ============================================================================
// SUPPORT AND RESISTANCE
// ============================================================================

// SupportResistance holds the range extrema of a window
type SupportResistance struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

// FindSupportResistance returns the lowest low as support and the highest
// high as resistance over the supplied window. This entry point is a plain
// range extremum; FindPriceClusters derives multi-level support/resistance.
func FindSupportResistance(candles []market.Candle) SupportResistance {
	if len(candles) == 0 {
		return SupportResistance{}
	}

	support := candles[0].Low
	resistance := candles[0].High
	for _, c := range candles {
		if c.Low < support {
			support = c.Low
		}
		if c.High > resistance {
			resistance = c.High
		}
	}

	return SupportResistance{Support: support, Resistance: resistance}
}

// ============================================================================
// PRICE CLUSTERS
// ============================================================================

// PriceCluster groups prices that sit within a tolerance of the cluster's
// anchor price. A cluster with more than 3 members marks a significant level.
type PriceCluster struct {
	Anchor float64   `json:"anchor"`
	Prices []float64 `json:"prices"`
}

// Significant reports whether the cluster has enough members to count as a
// support/resistance level.
func (pc PriceCluster) Significant() bool {
	return len(pc.Prices) > 3
}

// FindPriceClusters groups a flat list of prices into clusters. Each price
// joins the first existing cluster whose anchor it is within tolerance of
// (first match, not nearest match); otherwise it anchors a new cluster.
// Tolerance is relative, e.g. 0.005 for 0.5%.
func FindPriceClusters(prices []float64, tolerance float64) []PriceCluster {
	if tolerance <= 0 {
		tolerance = 0.005
	}

	var clusters []PriceCluster
	for _, price := range prices {
		matched := false
		for i := range clusters {
			anchor := clusters[i].Anchor
			if math.Abs(price-anchor) <= anchor*tolerance {
				clusters[i].Prices = append(clusters[i].Prices, price)
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, PriceCluster{
				Anchor: price,
				Prices: []float64{price},
			})
		}
	}

	return clusters
}

// SignificantLevels filters the clusters down to the anchors of those with
// more than 3 members.
func SignificantLevels(clusters []PriceCluster) []float64 {
	var levels []float64
	for _, c := range clusters {
		if c.Significant() {
			levels = append(levels, c.Anchor)
		}
	}
	return levels
}

// ============================================================================
// FIBONACCI RETRACEMENT LEVELS
// ============================================================================

// FibonacciLevels holds retracement levels between the window's extremes
type FibonacciLevels struct {
	Level0   float64 `json:"level_0"`   // 0% (high)
	Level236 float64 `json:"level_236"` // 23.6%
	Level382 float64 `json:"level_382"` // 38.2%
	Level50  float64 `json:"level_50"`  // 50%
	Level618 float64 `json:"level_618"` // 61.8%
	Level100 float64 `json:"level_100"` // 100% (low)
}

// CalculateFibonacciLevels calculates retracement levels from the high and
// low of the supplied window.
func CalculateFibonacciLevels(candles []market.Candle) FibonacciLevels {
	if len(candles) == 0 {
		return FibonacciLevels{}
	}

	sr := FindSupportResistance(candles)
	high := sr.Resistance
	low := sr.Support
	diff := high - low

	return FibonacciLevels{
		Level0:   high,
		Level236: high - diff*0.236,
		Level382: high - diff*0.382,
		Level50:  high - diff*0.50,
		Level618: high - diff*0.618,
		Level100: low,
	}
}

// ============================================================================
// PIVOT POINTS
// ============================================================================

// PivotPoints holds standard pivot levels derived from the last candle
type PivotPoints struct {
	PP float64 `json:"pp"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
	S3 float64 `json:"s3"`
}

// CalculatePivotPoints calculates standard pivot points from the last
// completed candle in the window.
func CalculatePivotPoints(candles []market.Candle) PivotPoints {
	if len(candles) == 0 {
		return PivotPoints{}
	}

	last := candles[len(candles)-1]
	pp := (last.High + last.Low + last.Close) / 3

	return PivotPoints{
		PP: pp,
		R1: 2*pp - last.Low,
		S1: 2*pp - last.High,
		R2: pp + (last.High - last.Low),
		S2: pp - (last.High - last.Low),
		R3: last.High + 2*(pp-last.Low),
		S3: last.Low - 2*(last.High-pp),
	}
}
