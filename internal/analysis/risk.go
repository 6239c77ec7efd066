package analysis

import (
	"math"
)

// RiskLevel buckets the combined risk contributions
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// AssessRisk scores four binary risk contributions (RSI outside [30, 70],
// volatility above 5, absolute momentum above 10, ATR above 100), each
// worth two points, averaged into a 0 to 2 score. Scores of 1.5 and up are
// high risk, 1.0 and up medium, anything lower low.
func AssessRisk(rsi, volatility, momentum, atr float64) RiskLevel {
	score := 0.0
	if rsi < 30 || rsi > 70 {
		score += 2
	}
	if volatility > 5 {
		score += 2
	}
	if math.Abs(momentum) > 10 {
		score += 2
	}
	if atr > 100 {
		score += 2
	}
	score /= 4

	switch {
	case score >= 1.5:
		return RiskHigh
	case score >= 1.0:
		return RiskMedium
	default:
		return RiskLow
	}
}
