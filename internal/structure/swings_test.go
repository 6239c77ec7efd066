package structure

import (
	"testing"

	"crypto-analytics/internal/market"
)

// swingSeries builds candles with a fixed 1-wide body around the given
// center prices so highs and lows follow the centers
func swingSeries(centers ...float64) []market.Candle {
	candles := make([]market.Candle, len(centers))
	for i, p := range centers {
		candles[i] = market.Candle{
			Time:   int64(i + 1),
			Open:   p,
			High:   p + 1,
			Low:    p - 1,
			Close:  p,
			Volume: 100,
		}
	}
	return candles
}

// TestSwingDetection checks the 3-candle local extremum rule and that edge
// candles never qualify
func TestSwingDetection(t *testing.T) {
	// Peak at index 1 (110), trough at index 3 (90)
	ms := AnalyzeMarketStructure(swingSeries(100, 110, 95, 90, 100))

	if len(ms.SwingHighs) != 1 {
		t.Fatalf("expected 1 swing high, got %d", len(ms.SwingHighs))
	}
	if ms.SwingHighs[0].Index != 1 || ms.SwingHighs[0].Price != 111 {
		t.Errorf("swing high = {index %d, price %f}, want {1, 111}",
			ms.SwingHighs[0].Index, ms.SwingHighs[0].Price)
	}

	if len(ms.SwingLows) != 1 {
		t.Fatalf("expected 1 swing low, got %d", len(ms.SwingLows))
	}
	if ms.SwingLows[0].Index != 3 || ms.SwingLows[0].Price != 89 {
		t.Errorf("swing low = {index %d, price %f}, want {3, 89}",
			ms.SwingLows[0].Index, ms.SwingLows[0].Price)
	}
}

// TestTrendFromSwings checks the last-two-swings comparison
func TestTrendFromSwings(t *testing.T) {
	// Swings: high 111 at index 1, low 89 at index 3. Latest swing below
	// the previous one
	down := AnalyzeMarketStructure(swingSeries(100, 110, 95, 90, 100))
	if down.Trend != TrendDown {
		t.Errorf("trend = %s, want downtrend", down.Trend)
	}

	// Mirror: low first, then a higher swing high
	up := AnalyzeMarketStructure(swingSeries(100, 90, 105, 110, 100))
	if up.Trend != TrendUp {
		t.Errorf("trend = %s, want uptrend", up.Trend)
	}
}

// TestTrendNeutralWithoutSwings checks fewer than two swings gives neutral
func TestTrendNeutralWithoutSwings(t *testing.T) {
	ms := AnalyzeMarketStructure(swingSeries(100, 101, 102, 103))
	if ms.Trend != TrendNeutral {
		t.Errorf("monotonic series trend = %s, want neutral", ms.Trend)
	}

	if AnalyzeMarketStructure(nil).Trend != TrendNeutral {
		t.Error("empty series trend should be neutral")
	}
}

// TestStructureStrength checks the percent move from first to last close
func TestStructureStrength(t *testing.T) {
	ms := AnalyzeMarketStructure(swingSeries(100, 120, 95, 110))
	if !almostEqual(ms.Strength, 10) {
		t.Errorf("strength = %f, want 10", ms.Strength)
	}

	// Direction does not matter, only magnitude
	ms = AnalyzeMarketStructure(swingSeries(100, 120, 95, 90))
	if !almostEqual(ms.Strength, 10) {
		t.Errorf("strength of a decline = %f, want 10", ms.Strength)
	}
}
