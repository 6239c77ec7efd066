package indicators

import (
	"testing"

	"crypto-analytics/internal/market"
)

// TestRSIInsufficientData checks the neutral default below period+1 candles
func TestRSIInsufficientData(t *testing.T) {
	candles := candlesFromCloses(1, 2, 3, 4, 5)

	if got := CalculateRSI(candles, 14); got != 50.0 {
		t.Errorf("RSI with %d candles = %f, want exactly 50", len(candles), got)
	}
}

// TestRSIMonotonicUp checks that strictly rising closes give RSI = 100
func TestRSIMonotonicUp(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	if got := CalculateRSI(candlesFromCloses(closes...), 14); got != 100.0 {
		t.Errorf("RSI of strictly increasing series = %f, want 100", got)
	}
}

// TestRSIMonotonicDown checks that strictly falling closes give RSI near 0
func TestRSIMonotonicDown(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	got := CalculateRSI(candlesFromCloses(closes...), 14)
	if got > 1e-9 {
		t.Errorf("RSI of strictly decreasing series = %f, want ~0", got)
	}
	if got < 0 {
		t.Errorf("RSI below lower bound: %f", got)
	}
}

// TestRSIBounds checks 0 <= RSI <= 100 over mixed series
func TestRSIBounds(t *testing.T) {
	closes := []float64{100, 103, 99, 105, 95, 110, 90, 108, 92, 104,
		101, 97, 106, 94, 102, 100, 103, 98, 107, 96}

	got := CalculateRSI(candlesFromCloses(closes...), 14)
	if got < 0 || got > 100 {
		t.Errorf("RSI out of bounds: %f", got)
	}
}

// TestStochasticInsufficientData checks the {50, 50} default
func TestStochasticInsufficientData(t *testing.T) {
	candles := candlesFromCloses(1, 2, 3)

	got := CalculateStochastic(candles, 14, 3, 3)
	if got.K != 50 || got.D != 50 {
		t.Errorf("stochastic on short series = {%f, %f}, want {50, 50}", got.K, got.D)
	}

	// Enough for raw %K but not for smoothing
	candles = candlesFromCloses(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	got = CalculateStochastic(candles, 14, 3, 3)
	if got.K != 50 || got.D != 50 {
		t.Errorf("stochastic without smoothing data = {%f, %f}, want {50, 50}", got.K, got.D)
	}
}

// TestStochasticBounds checks 0 <= K, D <= 100
func TestStochasticBounds(t *testing.T) {
	candles := make([]market.Candle, 40)
	for i := range candles {
		base := 100 + 10*float64(i%7)
		candles[i] = market.Candle{
			Time:   int64(i + 1),
			Open:   base,
			High:   base + 5,
			Low:    base - 5,
			Close:  base + 2,
			Volume: 100,
		}
	}

	got := CalculateStochastic(candles, 14, 3, 3)
	if got.K < 0 || got.K > 100 {
		t.Errorf("stochastic K out of bounds: %f", got.K)
	}
	if got.D < 0 || got.D > 100 {
		t.Errorf("stochastic D out of bounds: %f", got.D)
	}
}

// TestStochasticFlatRange checks the division-by-zero guard: a flat range
// substitutes 50 for every raw %K, so K and D are exactly 50
func TestStochasticFlatRange(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 42
	}

	got := CalculateStochastic(candlesFromCloses(closes...), 14, 3, 3)
	if got.K != 50 || got.D != 50 {
		t.Errorf("stochastic on flat range = {%f, %f}, want {50, 50}", got.K, got.D)
	}
}

// TestStochasticTopOfRange checks a close at the window high gives K = 100
func TestStochasticTopOfRange(t *testing.T) {
	candles := make([]market.Candle, 25)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = market.Candle{
			Time:   int64(i + 1),
			Open:   price - 1,
			High:   price,
			Low:    price - 2,
			Close:  price, // every close at its window high
			Volume: 100,
		}
	}

	got := CalculateStochastic(candles, 14, 3, 3)
	if !almostEqual(got.K, 100) {
		t.Errorf("stochastic K at top of range = %f, want 100", got.K)
	}
	if !almostEqual(got.D, 100) {
		t.Errorf("stochastic D at top of range = %f, want 100", got.D)
	}
}
