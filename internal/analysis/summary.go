package analysis

import (
	"errors"
	"fmt"

	"crypto-analytics/internal/indicators"
	"crypto-analytics/internal/market"
	"crypto-analytics/internal/patterns"
	"crypto-analytics/internal/structure"
	"crypto-analytics/internal/volume"
)

// ErrInsufficientData is returned by Summarize when the series holds fewer
// candles than Config.MinCandles. It is the one place callers must check
// before trusting indicator values; every leaf computation degrades to a
// documented default instead.
var ErrInsufficientData = errors.New("insufficient candle data for summary")

// Config holds the indicator parameters used by the Analyzer. Zero values
// fall back to the defaults of DefaultConfig.
type Config struct {
	RSIPeriod           int     `json:"rsi_period"`
	StochasticPeriod    int     `json:"stochastic_period"`
	StochasticKSmooth   int     `json:"stochastic_k_smooth"`
	StochasticDSmooth   int     `json:"stochastic_d_smooth"`
	BollingerPeriod     int     `json:"bollinger_period"`
	BollingerMultiplier float64 `json:"bollinger_multiplier"`
	ATRPeriod           int     `json:"atr_period"`
	MomentumPeriod      int     `json:"momentum_period"`
	VolatilityPeriod    int     `json:"volatility_period"`
	VolumeProfileLevels int     `json:"volume_profile_levels"`
	ClusterTolerance    float64 `json:"cluster_tolerance"`
	MinCandles          int     `json:"min_candles"`
}

// DefaultConfig returns the standard parameter set
func DefaultConfig() Config {
	return Config{
		RSIPeriod:           14,
		StochasticPeriod:    14,
		StochasticKSmooth:   3,
		StochasticDSmooth:   3,
		BollingerPeriod:     20,
		BollingerMultiplier: 2,
		ATRPeriod:           14,
		MomentumPeriod:      10,
		VolatilityPeriod:    20,
		VolumeProfileLevels: 10,
		ClusterTolerance:    0.005,
		MinCandles:          200,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = d.RSIPeriod
	}
	if c.StochasticPeriod <= 0 {
		c.StochasticPeriod = d.StochasticPeriod
	}
	if c.StochasticKSmooth <= 0 {
		c.StochasticKSmooth = d.StochasticKSmooth
	}
	if c.StochasticDSmooth <= 0 {
		c.StochasticDSmooth = d.StochasticDSmooth
	}
	if c.BollingerPeriod <= 0 {
		c.BollingerPeriod = d.BollingerPeriod
	}
	if c.BollingerMultiplier <= 0 {
		c.BollingerMultiplier = d.BollingerMultiplier
	}
	if c.ATRPeriod <= 0 {
		c.ATRPeriod = d.ATRPeriod
	}
	if c.MomentumPeriod <= 0 {
		c.MomentumPeriod = d.MomentumPeriod
	}
	if c.VolatilityPeriod <= 0 {
		c.VolatilityPeriod = d.VolatilityPeriod
	}
	if c.VolumeProfileLevels <= 0 {
		c.VolumeProfileLevels = d.VolumeProfileLevels
	}
	if c.ClusterTolerance <= 0 {
		c.ClusterTolerance = d.ClusterTolerance
	}
	if c.MinCandles <= 0 {
		c.MinCandles = d.MinCandles
	}
	return c
}

// PriceSnapshot captures the window's last price and range
type PriceSnapshot struct {
	Last          float64 `json:"last"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	ChangePercent float64 `json:"change_percent"`
}

// MovingAverages holds the SMA/EMA family included in every summary
type MovingAverages struct {
	SMA20  float64 `json:"sma_20"`
	SMA50  float64 `json:"sma_50"`
	SMA200 float64 `json:"sma_200"`
	EMA20  float64 `json:"ema_20"`
	EMA50  float64 `json:"ema_50"`
}

// Summary is the composite market report. It is assembled fresh on every
// call and never updated incrementally.
type Summary struct {
	Symbol  string `json:"symbol"`
	Candles int    `json:"candles"`

	Price          PriceSnapshot                   `json:"price"`
	MovingAverages MovingAverages                  `json:"moving_averages"`
	RSI            float64                         `json:"rsi"`
	RSIDivergence  *patterns.Divergence            `json:"rsi_divergence,omitempty"`
	Stochastic     indicators.StochasticResult     `json:"stochastic"`
	Bollinger      indicators.BollingerBandsResult `json:"bollinger"`
	MACD           indicators.MACDResult           `json:"macd"`
	Ichimoku       indicators.IchimokuResult       `json:"ichimoku"`
	ATR            float64                         `json:"atr"`
	Momentum       float64                         `json:"momentum"`
	Volatility     float64                         `json:"volatility"`

	Levels      structure.SupportResistance `json:"levels"`
	KeyLevels   []float64                   `json:"key_levels,omitempty"`
	Fibonacci   structure.FibonacciLevels   `json:"fibonacci"`
	Pivots      structure.PivotPoints       `json:"pivots"`
	OrderBlocks []structure.OrderBlock      `json:"order_blocks,omitempty"`
	Structure   structure.MarketStructure   `json:"structure"`

	VolumeProfile         volume.Profile `json:"volume_profile"`
	CumulativeVolumeDelta float64        `json:"cumulative_volume_delta"`
	VolumeDeltas          []volume.Delta `json:"volume_deltas,omitempty"`

	Trend          TrendClass              `json:"trend"`
	Risk           RiskLevel               `json:"risk"`
	CandlePatterns []patterns.PatternType  `json:"candle_patterns,omitempty"`
	ChartPatterns  []patterns.ChartPattern `json:"chart_patterns,omitempty"`

	Signals []string `json:"signals"`
}

// Analyzer computes composite summaries with a fixed parameter set. It
// holds no state between calls and is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer, filling unset config fields with
// defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.withDefaults()}
}

// Summarize assembles the full market report for a candle series. It
// requires at least Config.MinCandles candles and returns
// ErrInsufficientData otherwise. The input is never mutated or retained.
func (a *Analyzer) Summarize(symbol string, candles []market.Candle) (*Summary, error) {
	if len(candles) < a.cfg.MinCandles {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(candles), a.cfg.MinCandles)
	}

	last := candles[len(candles)-1]
	first := candles[0]
	sr := structure.FindSupportResistance(candles)

	s := &Summary{
		Symbol:  symbol,
		Candles: len(candles),
		Price: PriceSnapshot{
			Last: last.Close,
			High: sr.Resistance,
			Low:  sr.Support,
		},
		MovingAverages: MovingAverages{
			SMA20:  indicators.CalculateSMA(candles, 20),
			SMA50:  indicators.CalculateSMA(candles, 50),
			SMA200: indicators.CalculateSMA(candles, 200),
			EMA20:  indicators.CalculateEMA(candles, 20),
			EMA50:  indicators.CalculateEMA(candles, 50),
		},
		RSI:        indicators.CalculateRSI(candles, a.cfg.RSIPeriod),
		Stochastic: indicators.CalculateStochastic(candles, a.cfg.StochasticPeriod, a.cfg.StochasticKSmooth, a.cfg.StochasticDSmooth),
		Bollinger:  indicators.CalculateBollingerBands(candles, a.cfg.BollingerPeriod, a.cfg.BollingerMultiplier),
		MACD:       indicators.CalculateMACD(candles),
		Ichimoku:   indicators.CalculateIchimoku(candles),
		ATR:        indicators.CalculateATR(candles, a.cfg.ATRPeriod),
		Momentum:   indicators.CalculateMomentum(candles, a.cfg.MomentumPeriod),
		Volatility: indicators.CalculateVolatility(candles, a.cfg.VolatilityPeriod),

		Levels:      sr,
		Fibonacci:   structure.CalculateFibonacciLevels(candles),
		Pivots:      structure.CalculatePivotPoints(candles),
		OrderBlocks: structure.FindOrderBlocks(candles),
		Structure:   structure.AnalyzeMarketStructure(candles),

		VolumeProfile:         volume.CalculateProfile(candles, a.cfg.VolumeProfileLevels),
		CumulativeVolumeDelta: volume.CumulativeDelta(candles),
		VolumeDeltas:          volume.DeltaSeries(candles),

		CandlePatterns: patterns.DetectCandlePatterns(candles),
		ChartPatterns:  patterns.DetectChartPatterns(candles),
	}

	if first.Close != 0 {
		s.Price.ChangePercent = (last.Close - first.Close) / first.Close * 100
	}

	if div, ok := patterns.DetectDivergence(candles, patterns.KindRSI); ok {
		s.RSIDivergence = &div
	}

	// Multi-level support/resistance from clustered extremes
	extremes := append(market.Highs(candles), market.Lows(candles)...)
	s.KeyLevels = structure.SignificantLevels(structure.FindPriceClusters(extremes, a.cfg.ClusterTolerance))

	s.Trend = ClassifyTrend(last.Close, s.MovingAverages.SMA50, s.MovingAverages.SMA200)
	s.Risk = AssessRisk(s.RSI, s.Volatility, s.Momentum, s.ATR)
	s.Signals = a.generateSignals(s)

	return s, nil
}

// IndicatorSet is the indicator-only view of a series, for callers that
// do not need levels, patterns, or signals.
type IndicatorSet struct {
	Symbol  string `json:"symbol"`
	Candles int    `json:"candles"`

	Price          PriceSnapshot                   `json:"price"`
	MovingAverages MovingAverages                  `json:"moving_averages"`
	RSI            float64                         `json:"rsi"`
	Stochastic     indicators.StochasticResult     `json:"stochastic"`
	Bollinger      indicators.BollingerBandsResult `json:"bollinger"`
	MACD           indicators.MACDResult           `json:"macd"`
	Ichimoku       indicators.IchimokuResult       `json:"ichimoku"`
	ATR            float64                         `json:"atr"`
	Momentum       float64                         `json:"momentum"`
	Volatility     float64                         `json:"volatility"`
}

// Indicators computes just the indicator block. Unlike Summarize there
// is no minimum series length; short inputs degrade to the documented
// neutral defaults.
func (a *Analyzer) Indicators(symbol string, candles []market.Candle) IndicatorSet {
	set := IndicatorSet{
		Symbol:  symbol,
		Candles: len(candles),
		MovingAverages: MovingAverages{
			SMA20:  indicators.CalculateSMA(candles, 20),
			SMA50:  indicators.CalculateSMA(candles, 50),
			SMA200: indicators.CalculateSMA(candles, 200),
			EMA20:  indicators.CalculateEMA(candles, 20),
			EMA50:  indicators.CalculateEMA(candles, 50),
		},
		RSI:        indicators.CalculateRSI(candles, a.cfg.RSIPeriod),
		Stochastic: indicators.CalculateStochastic(candles, a.cfg.StochasticPeriod, a.cfg.StochasticKSmooth, a.cfg.StochasticDSmooth),
		Bollinger:  indicators.CalculateBollingerBands(candles, a.cfg.BollingerPeriod, a.cfg.BollingerMultiplier),
		MACD:       indicators.CalculateMACD(candles),
		Ichimoku:   indicators.CalculateIchimoku(candles),
		ATR:        indicators.CalculateATR(candles, a.cfg.ATRPeriod),
		Momentum:   indicators.CalculateMomentum(candles, a.cfg.MomentumPeriod),
		Volatility: indicators.CalculateVolatility(candles, a.cfg.VolatilityPeriod),
	}

	if len(candles) > 0 {
		sr := structure.FindSupportResistance(candles)
		last := candles[len(candles)-1]
		first := candles[0]
		set.Price = PriceSnapshot{Last: last.Close, High: sr.Resistance, Low: sr.Support}
		if first.Close != 0 {
			set.Price.ChangePercent = (last.Close - first.Close) / first.Close * 100
		}
	}

	return set
}

// generateSignals builds the textual signal list. The rule order is fixed
// and signals accumulate; none of them are mutually exclusive.
func (a *Analyzer) generateSignals(s *Summary) []string {
	signals := []string{}
	price := s.Price.Last

	if s.RSI < 30 && s.Trend != TrendStrongBearish {
		signals = append(signals, "RSI oversold - potential buy opportunity")
	}
	if s.RSI > 70 && s.Trend != TrendStrongBullish {
		signals = append(signals, "RSI overbought - potential sell opportunity")
	}

	if price < s.Bollinger.Lower {
		signals = append(signals, "Price below lower Bollinger Band - buy signal")
	}
	if price > s.Bollinger.Upper {
		signals = append(signals, "Price above upper Bollinger Band - sell signal")
	}

	if s.Stochastic.K < 20 && s.Stochastic.D < 20 {
		signals = append(signals, "Stochastic oversold")
	}
	if s.Stochastic.K > 80 && s.Stochastic.D > 80 {
		signals = append(signals, "Stochastic overbought")
	}

	if s.MACD.MACD > 0 {
		signals = append(signals, "MACD positive - bullish momentum")
	} else if s.MACD.MACD < 0 {
		signals = append(signals, "MACD negative - bearish momentum")
	}

	if price > s.Ichimoku.SenkouSpanA && price > s.Ichimoku.SenkouSpanB {
		signals = append(signals, "Price above Ichimoku cloud - bullish")
	} else if price < s.Ichimoku.SenkouSpanA && price < s.Ichimoku.SenkouSpanB {
		signals = append(signals, "Price below Ichimoku cloud - bearish")
	}

	if s.CumulativeVolumeDelta > 0 {
		signals = append(signals, "Positive volume delta - buying pressure")
	} else if s.CumulativeVolumeDelta < 0 {
		signals = append(signals, "Negative volume delta - selling pressure")
	}

	for _, p := range s.CandlePatterns {
		signals = append(signals, fmt.Sprintf("Candlestick pattern detected: %s", p))
	}
	for _, p := range s.ChartPatterns {
		signals = append(signals, fmt.Sprintf("Chart pattern detected: %s", p.Type))
	}

	if s.Risk == RiskHigh {
		signals = append(signals, "High risk conditions - reduce position size")
	}

	return signals
}
