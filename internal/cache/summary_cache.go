package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/logging"
	"crypto-analytics/internal/market"
)

// Store is the subset of CacheService used for summary memoization.
// Defined as an interface so tests can substitute a mock.
type Store interface {
	IsHealthy() bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
}

// statsProvider is implemented by stores that track circuit state.
type statsProvider interface {
	GetStats() Stats
}

// SummaryCache memoizes computed analysis summaries keyed by symbol and
// a fingerprint of the candle series. Identical inputs hit the cache,
// any change to the series produces a new key.
type SummaryCache struct {
	store Store
	ttl   time.Duration
}

// NewSummaryCache creates a summary cache backed by the given store.
// A zero ttl falls back to DefaultSummaryTTL.
func NewSummaryCache(store Store, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &SummaryCache{
		store: store,
		ttl:   ttl,
	}
}

// Healthy reports whether the backing store is currently reachable.
func (c *SummaryCache) Healthy() bool {
	return c.store.IsHealthy()
}

// Stats returns the backing store's circuit statistics. The second
// return is false for stores that do not track them.
func (c *SummaryCache) Stats() (Stats, bool) {
	if p, ok := c.store.(statsProvider); ok {
		return p.GetStats(), true
	}
	return Stats{}, false
}

// SummaryKey builds the cache key for a symbol and candle series.
// The fingerprint is an FNV-1a hash over every candle field, so two
// series differing in a single value never share a key.
func SummaryKey(symbol string, candles []market.Candle) string {
	h := fnv.New64a()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for _, c := range candles {
		binary.LittleEndian.PutUint64(buf[:], uint64(c.Time))
		h.Write(buf[:])
		writeFloat(c.Open)
		writeFloat(c.High)
		writeFloat(c.Low)
		writeFloat(c.Close)
		writeFloat(c.Volume)
	}
	return fmt.Sprintf(PrefixSummary, symbol, len(candles), h.Sum64())
}

// Get returns the cached summary for the series, or false on a miss.
// Cache failures are treated as misses so analysis never fails because
// Redis is down.
func (c *SummaryCache) Get(ctx context.Context, symbol string, candles []market.Candle) (*analysis.Summary, bool) {
	if !c.store.IsHealthy() {
		return nil, false
	}

	key := SummaryKey(symbol, candles)
	var summary analysis.Summary
	if err := c.store.GetJSON(ctx, key, &summary); err != nil {
		if err != ErrCacheMiss && err != ErrCacheUnavailable {
			logging.CacheContext("get", key).Debug("Summary cache read failed", "error", err)
		}
		return nil, false
	}

	return &summary, true
}

// Put stores a computed summary. Failures are logged and ignored.
func (c *SummaryCache) Put(ctx context.Context, symbol string, candles []market.Candle, summary *analysis.Summary) {
	if summary == nil || !c.store.IsHealthy() {
		return
	}

	key := SummaryKey(symbol, candles)
	if err := c.store.SetJSON(ctx, key, summary, c.ttl); err != nil {
		logging.CacheContext("put", key).Debug("Summary cache write failed", "error", err)
	}
}
