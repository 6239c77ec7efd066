package logging

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateTraceID generates a new trace ID
func GenerateTraceID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// AnalysisContext creates a logger context for analysis runs
func AnalysisContext(symbol string, candleCount int) *Logger {
	return Default().WithFields(map[string]interface{}{
		"symbol":  symbol,
		"candles": candleCount,
	}).WithComponent("analysis")
}

// CacheContext creates a logger context for cache operations
func CacheContext(operation, key string) *Logger {
	return Default().WithFields(map[string]interface{}{
		"operation": operation,
		"key":       key,
	}).WithComponent("cache")
}
