// Package volume provides volume-distribution analysis over candle series:
// volume profile with point of control, cumulative volume delta, and the
// per-candle delta series.
package volume

import (
	"crypto-analytics/internal/market"
	"crypto-analytics/internal/structure"
)

// PriceBucket is one bin of a volume profile. Price is the lower bound of
// the bucket's price range.
type PriceBucket struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// Profile holds the volume distribution of a window
type Profile struct {
	Buckets         []PriceBucket `json:"buckets"`
	PointOfControl  float64       `json:"point_of_control"`
	TotalVolume     float64       `json:"total_volume"`
	ValueAreaVolume float64       `json:"value_area_volume"`
}

// CalculateProfile partitions the window's [lowest low, highest high] range
// into levels equal-width buckets and accumulates each candle's volume into
// the bucket containing its high/low midpoint. The point of control is the
// lower price bound of the bucket with the most volume; the value area is
// reported as 70% of total volume, a raw magnitude rather than a price
// range.
func CalculateProfile(candles []market.Candle, levels int) Profile {
	if levels <= 0 {
		levels = 10
	}
	if len(candles) == 0 {
		return Profile{}
	}

	sr := structure.FindSupportResistance(candles)
	low := sr.Support
	width := (sr.Resistance - low) / float64(levels)

	buckets := make([]PriceBucket, levels)
	for i := range buckets {
		buckets[i].Price = low + width*float64(i)
	}

	total := 0.0
	for _, c := range candles {
		idx := 0
		if width > 0 {
			idx = int((c.Midpoint() - low) / width)
			if idx >= levels {
				idx = levels - 1
			}
			if idx < 0 {
				idx = 0
			}
		}
		buckets[idx].Volume += c.Volume
		total += c.Volume
	}

	poc := buckets[0].Price
	maxVolume := buckets[0].Volume
	for _, b := range buckets[1:] {
		if b.Volume > maxVolume {
			maxVolume = b.Volume
			poc = b.Price
		}
	}

	return Profile{
		Buckets:         buckets,
		PointOfControl:  poc,
		TotalVolume:     total,
		ValueAreaVolume: total * 0.70,
	}
}
