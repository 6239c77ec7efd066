package market

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// DecodeJSON reads a JSON array of candles from r.
func DecodeJSON(r io.Reader) ([]Candle, error) {
	var candles []Candle
	if err := json.NewDecoder(r).Decode(&candles); err != nil {
		return nil, fmt.Errorf("decoding candle JSON: %w", err)
	}
	return candles, nil
}

// DecodeCSV reads candles from CSV rows in time,open,high,low,close,volume
// order. A header row is detected by a non-numeric first field and skipped.
func DecodeCSV(r io.Reader) ([]Candle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6

	var candles []Candle
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading candle CSV: %w", err)
		}
		line++

		ts, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if line == 1 {
				// Header row
				continue
			}
			return nil, fmt.Errorf("line %d: invalid timestamp %q", line, record[0])
		}

		values := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid field %q", line, record[i+1])
			}
			values[i] = v
		}

		candles = append(candles, Candle{
			Time:   ts,
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return candles, nil
}
