package structure

import (
	"crypto-analytics/internal/market"
)

// ============================================================================
// ORDER BLOCKS
// ============================================================================

// BlockKind identifies the direction of a detected order block
type BlockKind string

const (
	BlockBullish BlockKind = "bullish"
	BlockBearish BlockKind = "bearish"
)

// OrderBlock records the price range of a candle implicated in a momentum
// break. Top and Bottom are the high and low of the originating candle.
type OrderBlock struct {
	Kind   BlockKind `json:"kind"`
	Top    float64   `json:"top"`
	Bottom float64   `json:"bottom"`
	Time   int64     `json:"time"`
}

// FindOrderBlocks scans consecutive candle pairs for momentum breaks.
// A bullish order block is a bearish candle immediately followed by a
// bullish candle closing above the bearish candle's high; a bearish order
// block is the mirrored case, a bullish candle followed by a bearish candle
// closing below its low. The flagged block carries the originating candle's
// range and time.
func FindOrderBlocks(candles []market.Candle) []OrderBlock {
	var blocks []OrderBlock

	for i := 0; i+1 < len(candles); i++ {
		origin := candles[i]
		next := candles[i+1]

		if origin.IsBearish() && next.IsBullish() && next.Close > origin.High {
			blocks = append(blocks, OrderBlock{
				Kind:   BlockBullish,
				Top:    origin.High,
				Bottom: origin.Low,
				Time:   origin.Time,
			})
			continue
		}

		if origin.IsBullish() && next.IsBearish() && next.Close < origin.Low {
			blocks = append(blocks, OrderBlock{
				Kind:   BlockBearish,
				Top:    origin.High,
				Bottom: origin.Low,
				Time:   origin.Time,
			})
		}
	}

	return blocks
}
