package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"crypto-analytics/config"
	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/api"
	"crypto-analytics/internal/cache"
	"crypto-analytics/internal/logging"

	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(&logging.Config{
		Level:       cfg.LoggingConfig.Level,
		Output:      cfg.LoggingConfig.Output,
		JSONFormat:  cfg.LoggingConfig.JSONFormat,
		IncludeFile: cfg.LoggingConfig.IncludeFile,
		Component:   "main",
	})
	logging.SetDefault(logger)
	logger.Info("Structured logging initialized")

	// Request logger for the HTTP layer
	zlevel, zerr := zerolog.ParseLevel(strings.ToLower(cfg.LoggingConfig.Level))
	if zerr != nil {
		zlevel = zerolog.InfoLevel
	}
	requestLogger := zerolog.New(os.Stdout).Level(zlevel).With().Timestamp().Logger()

	// Optional Redis-backed summary cache
	var summaries *cache.SummaryCache
	if cfg.RedisConfig.Enabled {
		cacheService, err := cache.NewCacheService(cfg.RedisConfig)
		if err != nil {
			logger.Warn("Cache disabled", "error", err)
		} else {
			defer cacheService.Close()
			summaries = cache.NewSummaryCache(cacheService, cfg.RedisConfig.TTL)
			logger.Info("Summary cache enabled", "address", cfg.RedisConfig.Address)
		}
	}

	analyzer := analysis.NewAnalyzer(engineConfig(cfg.EngineConfig))

	server := api.NewServer(cfg.ServerConfig, analyzer, summaries, requestLogger)

	// Start the server in a goroutine so we can catch signals
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", "error", err)
		}
		return
	}

	shutdownTimeout := time.Duration(cfg.ServerConfig.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}

	logger.Info("Shutdown complete")
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
