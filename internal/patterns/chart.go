package patterns

import (
	"math"

	"crypto-analytics/internal/market"
	"crypto-analytics/internal/structure"
)

// ChartPatternType represents a multi-candle chart formation
type ChartPatternType string

const (
	HeadAndShoulders ChartPatternType = "head_and_shoulders"
	DoubleTop        ChartPatternType = "double_top"
	DoubleBottom     ChartPatternType = "double_bottom"
)

// Relative tolerance for treating two peaks or troughs as equal
const chartEqualityTolerance = 0.02

// ChartPattern records one detected formation and the prices that formed it
type ChartPattern struct {
	Type   ChartPatternType `json:"type"`
	Prices []float64        `json:"prices"`
}

// DetectChartPatterns scans the window's swing points for head-and-
// shoulders, double top and double bottom formations. Detection stops at
// the first match per pattern type.
func DetectChartPatterns(candles []market.Candle) []ChartPattern {
	ms := structure.AnalyzeMarketStructure(candles)

	peaks := make([]float64, len(ms.SwingHighs))
	for i, p := range ms.SwingHighs {
		peaks[i] = p.Price
	}
	troughs := make([]float64, len(ms.SwingLows))
	for i, p := range ms.SwingLows {
		troughs[i] = p.Price
	}

	var found []ChartPattern

	// Head and shoulders: three consecutive peaks, the middle one tallest,
	// the outer two within tolerance of each other
	for i := 0; i+2 < len(peaks); i++ {
		left, head, right := peaks[i], peaks[i+1], peaks[i+2]
		if head > left && head > right && withinTolerance(left, right) {
			found = append(found, ChartPattern{
				Type:   HeadAndShoulders,
				Prices: []float64{left, head, right},
			})
			break
		}
	}

	// Double top: two consecutive peaks within tolerance
	for i := 0; i+1 < len(peaks); i++ {
		if withinTolerance(peaks[i], peaks[i+1]) {
			found = append(found, ChartPattern{
				Type:   DoubleTop,
				Prices: []float64{peaks[i], peaks[i+1]},
			})
			break
		}
	}

	// Double bottom: two consecutive troughs within tolerance
	for i := 0; i+1 < len(troughs); i++ {
		if withinTolerance(troughs[i], troughs[i+1]) {
			found = append(found, ChartPattern{
				Type:   DoubleBottom,
				Prices: []float64{troughs[i], troughs[i+1]},
			})
			break
		}
	}

	return found
}

func withinTolerance(a, b float64) bool {
	if a == 0 {
		return b == 0
	}
	return math.Abs(a-b)/math.Abs(a) <= chartEqualityTolerance
}
