package market

import (
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	input := `[
		{"time": 1000, "open": 100, "high": 105, "low": 99, "close": 104, "volume": 10},
		{"time": 2000, "open": 104, "high": 106, "low": 103, "close": 105, "volume": 12}
	]`

	candles, err := DecodeJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Time != 1000 || candles[0].Close != 104 {
		t.Errorf("first candle mismatch: %+v", candles[0])
	}
	if candles[1].Volume != 12 {
		t.Errorf("expected volume 12, got %f", candles[1].Volume)
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	if _, err := DecodeJSON(strings.NewReader(`{not an array`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDecodeCSV(t *testing.T) {
	input := "1000,100,105,99,104,10\n2000,104,106,103,105,12\n"

	candles, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[1].Time != 2000 || candles[1].High != 106 {
		t.Errorf("second candle mismatch: %+v", candles[1])
	}
}

func TestDecodeCSVSkipsHeader(t *testing.T) {
	input := "time,open,high,low,close,volume\n1000,100,105,99,104,10\n"

	candles, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("expected 1 candle after header, got %d", len(candles))
	}
	if candles[0].Open != 100 {
		t.Errorf("expected open 100, got %f", candles[0].Open)
	}
}

func TestDecodeCSVBadField(t *testing.T) {
	input := "1000,100,105,99,104,10\n2000,abc,106,103,105,12\n"

	if _, err := DecodeCSV(strings.NewReader(input)); err == nil {
		t.Error("expected error for non-numeric field")
	}
}

func TestValidate(t *testing.T) {
	valid := []Candle{
		{Time: 1000, Open: 100, High: 105, Low: 99, Close: 104, Volume: 10},
		{Time: 2000, Open: 104, High: 106, Low: 103, Close: 105, Volume: 12},
	}
	if err := Validate(valid); err != nil {
		t.Errorf("valid series rejected: %v", err)
	}

	if err := Validate(nil); err != nil {
		t.Errorf("empty series rejected: %v", err)
	}

	cases := []struct {
		name    string
		candles []Candle
	}{
		{
			"time going backwards",
			[]Candle{
				{Time: 2000, Open: 100, High: 105, Low: 99, Close: 104},
				{Time: 1000, Open: 104, High: 106, Low: 103, Close: 105},
			},
		},
		{
			"low above high",
			[]Candle{{Time: 1000, Open: 100, High: 99, Low: 105, Close: 100}},
		},
		{
			"open outside range",
			[]Candle{{Time: 1000, Open: 110, High: 105, Low: 99, Close: 104}},
		},
		{
			"close outside range",
			[]Candle{{Time: 1000, Open: 100, High: 105, Low: 99, Close: 98}},
		},
		{
			"negative volume",
			[]Candle{{Time: 1000, Open: 100, High: 105, Low: 99, Close: 104, Volume: -1}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.candles); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSliceHelpers(t *testing.T) {
	candles := []Candle{
		{Time: 1000, Open: 100, High: 105, Low: 99, Close: 104, Volume: 10},
		{Time: 2000, Open: 104, High: 106, Low: 103, Close: 105, Volume: 12},
		{Time: 3000, Open: 105, High: 108, Low: 104, Close: 107, Volume: 9},
	}

	closes := Closes(candles)
	if len(closes) != 3 || closes[2] != 107 {
		t.Errorf("Closes mismatch: %v", closes)
	}
	if highs := Highs(candles); highs[2] != 108 {
		t.Errorf("Highs mismatch: %v", highs)
	}
	if lows := Lows(candles); lows[0] != 99 {
		t.Errorf("Lows mismatch: %v", lows)
	}
	if volumes := Volumes(candles); volumes[1] != 12 {
		t.Errorf("Volumes mismatch: %v", volumes)
	}

	last, ok := Last(candles)
	if !ok || last.Time != 3000 {
		t.Errorf("Last mismatch: %+v ok=%v", last, ok)
	}
	if _, ok := Last(nil); ok {
		t.Error("Last of empty series should report false")
	}

	tail := Tail(candles, 2)
	if len(tail) != 2 || tail[0].Time != 2000 {
		t.Errorf("Tail mismatch: %+v", tail)
	}
	if got := Tail(candles, 10); len(got) != 3 {
		t.Errorf("Tail larger than series should return all candles, got %d", len(got))
	}
}

func TestCandleAccessors(t *testing.T) {
	c := Candle{Open: 100, High: 110, Low: 95, Close: 105}

	if !c.IsBullish() || c.IsBearish() {
		t.Error("close above open should be bullish")
	}
	if c.Body() != 5 {
		t.Errorf("expected body 5, got %f", c.Body())
	}
	if c.Range() != 15 {
		t.Errorf("expected range 15, got %f", c.Range())
	}
	if c.UpperWick() != 5 {
		t.Errorf("expected upper wick 5, got %f", c.UpperWick())
	}
	if c.LowerWick() != 5 {
		t.Errorf("expected lower wick 5, got %f", c.LowerWick())
	}
	if c.Midpoint() != 102.5 {
		t.Errorf("expected midpoint 102.5, got %f", c.Midpoint())
	}
}
