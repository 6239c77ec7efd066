package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerConfig  ServerConfig  `json:"server"`
	EngineConfig  EngineConfig  `json:"engine"`
	RedisConfig   RedisConfig   `json:"redis"`
	LoggingConfig LoggingConfig `json:"logging"`
}

// ServerConfig holds the HTTP analysis API settings
type ServerConfig struct {
	Port            int    `json:"port"`
	Host            string `json:"host"`
	AllowedOrigins  string `json:"allowed_origins"` // comma-separated, "*" for any
	ReadTimeout     int    `json:"read_timeout"`    // seconds
	WriteTimeout    int    `json:"write_timeout"`   // seconds
	ShutdownTimeout int    `json:"shutdown_timeout"`
	RateLimit       int    `json:"rate_limit"`        // requests per window per client
	RateLimitWindow int    `json:"rate_limit_window"` // seconds
	MaxCandles      int    `json:"max_candles"`       // largest accepted series per request
}

// EngineConfig holds the indicator parameters applied to every analysis
type EngineConfig struct {
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

// RedisConfig holds the optional summary cache settings
type RedisConfig struct {
	Enabled  bool          `json:"enabled"`
	Address  string        `json:"address"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	PoolSize int           `json:"pool_size"`
	TTL      time.Duration `json:"ttl"`
}

type LoggingConfig struct {
	Level       string `json:"level"`        // DEBUG, INFO, WARN, ERROR
	Output      string `json:"output"`       // stdout, stderr, or file path
	JSONFormat  bool   `json:"json_format"`  // Output as JSON
	IncludeFile bool   `json:"include_file"` // Include file and line number
}

// AllowedOriginList splits the configured origins
func (s ServerConfig) AllowedOriginList() []string {
	parts := strings.Split(s.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Load reads config.json when present and applies environment variable
// overrides on top. Environment always wins.
func Load() (*Config, error) {
	cfg, err := loadFromFile("config.json")
	if err != nil {
		cfg = &Config{}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	// Server config
	cfg.ServerConfig.Port = getEnvIntOrDefault("WEB_PORT", defaultInt(cfg.ServerConfig.Port, 8080))
	cfg.ServerConfig.Host = getEnvOrDefault("WEB_HOST", defaultString(cfg.ServerConfig.Host, "0.0.0.0"))
	cfg.ServerConfig.AllowedOrigins = getEnvOrDefault("SERVER_ALLOWED_ORIGINS", defaultString(cfg.ServerConfig.AllowedOrigins, "*"))
	cfg.ServerConfig.ReadTimeout = getEnvIntOrDefault("SERVER_READ_TIMEOUT", defaultInt(cfg.ServerConfig.ReadTimeout, 30))
	cfg.ServerConfig.WriteTimeout = getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", defaultInt(cfg.ServerConfig.WriteTimeout, 30))
	cfg.ServerConfig.ShutdownTimeout = getEnvIntOrDefault("SERVER_SHUTDOWN_TIMEOUT", defaultInt(cfg.ServerConfig.ShutdownTimeout, 10))
	cfg.ServerConfig.RateLimit = getEnvIntOrDefault("SERVER_RATE_LIMIT", defaultInt(cfg.ServerConfig.RateLimit, 60))
	cfg.ServerConfig.RateLimitWindow = getEnvIntOrDefault("SERVER_RATE_LIMIT_WINDOW", defaultInt(cfg.ServerConfig.RateLimitWindow, 60))
	cfg.ServerConfig.MaxCandles = getEnvIntOrDefault("SERVER_MAX_CANDLES", defaultInt(cfg.ServerConfig.MaxCandles, 5000))

	// Engine config
	cfg.EngineConfig.RSIPeriod = getEnvIntOrDefault("ENGINE_RSI_PERIOD", defaultInt(cfg.EngineConfig.RSIPeriod, 14))
	cfg.EngineConfig.StochasticPeriod = getEnvIntOrDefault("ENGINE_STOCHASTIC_PERIOD", defaultInt(cfg.EngineConfig.StochasticPeriod, 14))
	cfg.EngineConfig.StochasticKSmooth = getEnvIntOrDefault("ENGINE_STOCHASTIC_K_SMOOTH", defaultInt(cfg.EngineConfig.StochasticKSmooth, 3))
	cfg.EngineConfig.StochasticDSmooth = getEnvIntOrDefault("ENGINE_STOCHASTIC_D_SMOOTH", defaultInt(cfg.EngineConfig.StochasticDSmooth, 3))
	cfg.EngineConfig.BollingerPeriod = getEnvIntOrDefault("ENGINE_BOLLINGER_PERIOD", defaultInt(cfg.EngineConfig.BollingerPeriod, 20))
	cfg.EngineConfig.BollingerMultiplier = getEnvFloatOrDefault("ENGINE_BOLLINGER_MULTIPLIER", defaultFloat(cfg.EngineConfig.BollingerMultiplier, 2.0))
	cfg.EngineConfig.ATRPeriod = getEnvIntOrDefault("ENGINE_ATR_PERIOD", defaultInt(cfg.EngineConfig.ATRPeriod, 14))
	cfg.EngineConfig.MomentumPeriod = getEnvIntOrDefault("ENGINE_MOMENTUM_PERIOD", defaultInt(cfg.EngineConfig.MomentumPeriod, 10))
	cfg.EngineConfig.VolatilityPeriod = getEnvIntOrDefault("ENGINE_VOLATILITY_PERIOD", defaultInt(cfg.EngineConfig.VolatilityPeriod, 20))
	cfg.EngineConfig.VolumeProfileLevels = getEnvIntOrDefault("ENGINE_VOLUME_PROFILE_LEVELS", defaultInt(cfg.EngineConfig.VolumeProfileLevels, 10))
	cfg.EngineConfig.ClusterTolerance = getEnvFloatOrDefault("ENGINE_CLUSTER_TOLERANCE", defaultFloat(cfg.EngineConfig.ClusterTolerance, 0.005))
	cfg.EngineConfig.MinCandles = getEnvIntOrDefault("ENGINE_MIN_CANDLES", defaultInt(cfg.EngineConfig.MinCandles, 200))

	// Redis config
	cfg.RedisConfig.Enabled = getEnvOrDefault("REDIS_ENABLED", boolString(cfg.RedisConfig.Enabled)) == "true"
	cfg.RedisConfig.Address = getEnvOrDefault("REDIS_ADDRESS", defaultString(cfg.RedisConfig.Address, "localhost:6379"))
	cfg.RedisConfig.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.RedisConfig.Password)
	cfg.RedisConfig.DB = getEnvIntOrDefault("REDIS_DB", cfg.RedisConfig.DB)
	cfg.RedisConfig.PoolSize = getEnvIntOrDefault("REDIS_POOL_SIZE", defaultInt(cfg.RedisConfig.PoolSize, 10))
	cfg.RedisConfig.TTL = getEnvDurationOrDefault("REDIS_TTL", defaultDuration(cfg.RedisConfig.TTL, 5*time.Minute))

	// Logging config
	cfg.LoggingConfig.Level = getEnvOrDefault("LOG_LEVEL", defaultString(cfg.LoggingConfig.Level, "INFO"))
	cfg.LoggingConfig.Output = getEnvOrDefault("LOG_OUTPUT", defaultString(cfg.LoggingConfig.Output, "stdout"))
	cfg.LoggingConfig.JSONFormat = getEnvOrDefault("LOG_JSON", "true") == "true"
	cfg.LoggingConfig.IncludeFile = getEnvOrDefault("LOG_INCLUDE_FILE", "false") == "true"
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func defaultInt(current, fallback int) int {
	if current != 0 {
		return current
	}
	return fallback
}

func defaultFloat(current, fallback float64) float64 {
	if current != 0 {
		return current
	}
	return fallback
}

func defaultString(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}

func defaultDuration(current, fallback time.Duration) time.Duration {
	if current != 0 {
		return current
	}
	return fallback
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
