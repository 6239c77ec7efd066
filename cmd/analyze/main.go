package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crypto-analytics/config"
	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/market"

	"github.com/joho/godotenv"
)

func main() {
	// Try loading .env from the working dir and the executable dir
	exe, _ := os.Executable()
	exeDir := filepath.Dir(exe)
	godotenv.Load()
	godotenv.Load(filepath.Join(exeDir, ".env"))

	filePath := flag.String("file", "", "candle file to analyze (required)")
	format := flag.String("format", "json", "input format: json or csv")
	symbol := flag.String("symbol", "UNKNOWN", "symbol label for the report")
	lastN := flag.Int("last", 0, "analyze only the most recent N candles (0 = all)")
	asJSON := flag.Bool("json", false, "print the raw summary as JSON")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file <candles> [-format json|csv] [-symbol BTCUSDT] [-json]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", *filePath, err)
		os.Exit(1)
	}
	defer f.Close()

	var candles []market.Candle
	switch strings.ToLower(*format) {
	case "json":
		candles, err = market.DecodeJSON(f)
	case "csv":
		candles, err = market.DecodeCSV(f)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want json or csv)\n", *format)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode candles: %v\n", err)
		os.Exit(1)
	}

	if err := market.Validate(candles); err != nil {
		fmt.Fprintf(os.Stderr, "invalid candle series: %v\n", err)
		os.Exit(1)
	}

	if *lastN > 0 {
		candles = market.Tail(candles, *lastN)
	}

	analyzer := analysis.NewAnalyzer(engineConfig(cfg.EngineConfig))
	summary, err := analyzer.Summarize(*symbol, candles)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			fmt.Printf("⚠️  %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(data))
		return
	}

	printReport(summary)
}

func engineConfig(e config.EngineConfig) analysis.Config {
	return analysis.Config{
		RSIPeriod:           e.RSIPeriod,
		StochasticPeriod:    e.StochasticPeriod,
		StochasticKSmooth:   e.StochasticKSmooth,
		StochasticDSmooth:   e.StochasticDSmooth,
		BollingerPeriod:     e.BollingerPeriod,
		BollingerMultiplier: e.BollingerMultiplier,
		ATRPeriod:           e.ATRPeriod,
		MomentumPeriod:      e.MomentumPeriod,
		VolatilityPeriod:    e.VolatilityPeriod,
		VolumeProfileLevels: e.VolumeProfileLevels,
		ClusterTolerance:    e.ClusterTolerance,
		MinCandles:          e.MinCandles,
	}
}

func printReport(s *analysis.Summary) {
	line := strings.Repeat("=", 80)

	fmt.Println(line)
	fmt.Printf("📊 MARKET ANALYSIS: %s (%d candles)\n", s.Symbol, s.Candles)
	fmt.Println(line)

	fmt.Printf("Last price: %.4f  High: %.4f  Low: %.4f  Change: %+.2f%%\n",
		s.Price.Last, s.Price.High, s.Price.Low, s.Price.ChangePercent)
	fmt.Printf("Trend: %s  Risk: %s  Structure: %s (strength %.2f%%)\n",
		s.Trend, s.Risk, s.Structure.Trend, s.Structure.Strength)

	fmt.Println("\nIndicators")
	fmt.Printf("  RSI %.2f  Stochastic K %.2f / D %.2f\n", s.RSI, s.Stochastic.K, s.Stochastic.D)
	fmt.Printf("  MACD %.4f  Signal %.4f  Histogram %.4f\n", s.MACD.MACD, s.MACD.Signal, s.MACD.Histogram)
	fmt.Printf("  Bollinger %.4f / %.4f / %.4f\n", s.Bollinger.Upper, s.Bollinger.Middle, s.Bollinger.Lower)
	fmt.Printf("  SMA 20/50/200: %.4f / %.4f / %.4f  EMA 20/50: %.4f / %.4f\n",
		s.MovingAverages.SMA20, s.MovingAverages.SMA50, s.MovingAverages.SMA200,
		s.MovingAverages.EMA20, s.MovingAverages.EMA50)
	fmt.Printf("  ATR %.4f  Momentum %+.2f%%  Volatility %.2f%%\n", s.ATR, s.Momentum, s.Volatility)
	if s.Ichimoku.ChikouValid {
		fmt.Printf("  Ichimoku Tenkan %.4f  Kijun %.4f  SpanA %.4f  SpanB %.4f  Chikou %.4f\n",
			s.Ichimoku.TenkanSen, s.Ichimoku.KijunSen, s.Ichimoku.SenkouSpanA, s.Ichimoku.SenkouSpanB, s.Ichimoku.ChikouSpan)
	} else {
		fmt.Printf("  Ichimoku Tenkan %.4f  Kijun %.4f  SpanA %.4f  SpanB %.4f\n",
			s.Ichimoku.TenkanSen, s.Ichimoku.KijunSen, s.Ichimoku.SenkouSpanA, s.Ichimoku.SenkouSpanB)
	}

	fmt.Println("\nLevels")
	fmt.Printf("  Support %.4f  Resistance %.4f\n", s.Levels.Support, s.Levels.Resistance)
	if len(s.KeyLevels) > 0 {
		fmt.Printf("  Key levels: %s\n", formatLevels(s.KeyLevels))
	}
	fmt.Printf("  Pivot %.4f  R1 %.4f  S1 %.4f\n", s.Pivots.PP, s.Pivots.R1, s.Pivots.S1)
	fmt.Printf("  Fibonacci 38.2%%: %.4f  50%%: %.4f  61.8%%: %.4f\n",
		s.Fibonacci.Level382, s.Fibonacci.Level50, s.Fibonacci.Level618)

	fmt.Println("\nVolume")
	fmt.Printf("  Point of control %.4f  Total volume %.2f  CVD %+.2f\n",
		s.VolumeProfile.PointOfControl, s.VolumeProfile.TotalVolume, s.CumulativeVolumeDelta)

	if len(s.CandlePatterns) > 0 || len(s.ChartPatterns) > 0 || s.RSIDivergence != nil {
		fmt.Println("\nPatterns")
		for _, p := range s.CandlePatterns {
			fmt.Printf("  Candlestick: %s\n", p)
		}
		for _, p := range s.ChartPatterns {
			fmt.Printf("  Chart: %s\n", p.Type)
		}
		if s.RSIDivergence != nil {
			fmt.Printf("  RSI divergence: %s\n", s.RSIDivergence.Type)
		}
	}

	fmt.Println("\nSignals")
	if len(s.Signals) == 0 {
		fmt.Println("  (none)")
	}
	for _, sig := range s.Signals {
		fmt.Printf("  • %s\n", sig)
	}
	fmt.Println(line)
}

func formatLevels(levels []float64) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%.4f", l)
	}
	return strings.Join(parts, ", ")
}
