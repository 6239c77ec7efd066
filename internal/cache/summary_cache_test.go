package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"crypto-analytics/internal/analysis"
	"crypto-analytics/internal/market"
)

// ============================================================================
// MOCK TYPES
// ============================================================================

// MockStore mocks the Store interface for testing
type MockStore struct {
	healthy  bool
	data     map[string]string
	mu       sync.RWMutex
	getCalls []string
	setCalls []SetCall
	getErr   error
	setErr   error
}

// SetCall tracks SetJSON method invocations
type SetCall struct {
	Key   string
	Value string
	TTL   time.Duration
}

func NewMockStore() *MockStore {
	return &MockStore{
		healthy: true,
		data:    make(map[string]string),
	}
}

func (m *MockStore) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

func (m *MockStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, key)
	m.mu.Unlock()

	if m.getErr != nil {
		return m.getErr
	}

	m.mu.RLock()
	val, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal([]byte(val), dest)
}

func (m *MockStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = string(data)
	m.setCalls = append(m.setCalls, SetCall{Key: key, Value: string(data), TTL: ttl})
	m.mu.Unlock()
	return nil
}

// ============================================================================
// TESTS
// ============================================================================

func testCandles() []market.Candle {
	return []market.Candle{
		{Time: 1000, Open: 100, High: 105, Low: 99, Close: 104, Volume: 10},
		{Time: 2000, Open: 104, High: 106, Low: 102, Close: 103, Volume: 12},
		{Time: 3000, Open: 103, High: 108, Low: 103, Close: 107, Volume: 8},
	}
}

func TestSummaryKeyDeterministic(t *testing.T) {
	candles := testCandles()

	k1 := SummaryKey("BTCUSDT", candles)
	k2 := SummaryKey("BTCUSDT", candles)
	if k1 != k2 {
		t.Errorf("same input produced different keys: %s vs %s", k1, k2)
	}

	if !strings.HasPrefix(k1, "analysis:BTCUSDT:3:") {
		t.Errorf("unexpected key layout: %s", k1)
	}
}

func TestSummaryKeySensitivity(t *testing.T) {
	base := testCandles()
	baseKey := SummaryKey("BTCUSDT", base)

	changed := testCandles()
	changed[1].Close += 0.0001
	if SummaryKey("BTCUSDT", changed) == baseKey {
		t.Error("changing a close price did not change the key")
	}

	if SummaryKey("ETHUSDT", base) == baseKey {
		t.Error("changing the symbol did not change the key")
	}

	if SummaryKey("BTCUSDT", base[:2]) == baseKey {
		t.Error("truncating the series did not change the key")
	}
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	store := NewMockStore()
	sc := NewSummaryCache(store, time.Minute)
	ctx := context.Background()
	candles := testCandles()

	if _, ok := sc.Get(ctx, "BTCUSDT", candles); ok {
		t.Fatal("expected miss on empty cache")
	}

	summary := &analysis.Summary{Symbol: "BTCUSDT", Candles: len(candles), RSI: 55.5}
	sc.Put(ctx, "BTCUSDT", candles, summary)

	got, ok := sc.Get(ctx, "BTCUSDT", candles)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.Symbol != "BTCUSDT" || got.Candles != 3 || got.RSI != 55.5 {
		t.Errorf("cached summary mismatch: %+v", got)
	}

	if len(store.setCalls) != 1 {
		t.Fatalf("expected 1 set call, got %d", len(store.setCalls))
	}
	if store.setCalls[0].TTL != time.Minute {
		t.Errorf("expected TTL %v, got %v", time.Minute, store.setCalls[0].TTL)
	}
}

func TestSummaryCacheDegradedStore(t *testing.T) {
	store := NewMockStore()
	store.healthy = false
	sc := NewSummaryCache(store, time.Minute)
	ctx := context.Background()
	candles := testCandles()

	sc.Put(ctx, "BTCUSDT", candles, &analysis.Summary{Symbol: "BTCUSDT"})
	if len(store.setCalls) != 0 {
		t.Error("Put should be skipped when the store is unhealthy")
	}

	if _, ok := sc.Get(ctx, "BTCUSDT", candles); ok {
		t.Error("Get should miss when the store is unhealthy")
	}
	if len(store.getCalls) != 0 {
		t.Error("Get should not reach the store when unhealthy")
	}
}

// statsStore is a MockStore that also tracks circuit statistics
type statsStore struct {
	*MockStore
	stats Stats
}

func (s *statsStore) GetStats() Stats {
	return s.stats
}

func TestSummaryCacheStats(t *testing.T) {
	plain := NewSummaryCache(NewMockStore(), time.Minute)
	if _, ok := plain.Stats(); ok {
		t.Error("stores without circuit tracking should report no stats")
	}

	tracked := &statsStore{
		MockStore: NewMockStore(),
		stats:     Stats{Healthy: true, FailureCount: 2, Address: "localhost:6379", PoolSize: 10},
	}
	sc := NewSummaryCache(tracked, time.Minute)

	stats, ok := sc.Stats()
	if !ok {
		t.Fatal("expected stats from a circuit-tracking store")
	}
	if !stats.Healthy || stats.FailureCount != 2 || stats.Address != "localhost:6379" {
		t.Errorf("stats passthrough mismatch: %+v", stats)
	}
}

func TestSummaryCacheReadErrorIsMiss(t *testing.T) {
	store := NewMockStore()
	store.getErr = errors.New("connection reset")
	sc := NewSummaryCache(store, time.Minute)

	if _, ok := sc.Get(context.Background(), "BTCUSDT", testCandles()); ok {
		t.Error("store errors must surface as cache misses")
	}
}

func TestSummaryCacheDefaultTTL(t *testing.T) {
	store := NewMockStore()
	sc := NewSummaryCache(store, 0)
	ctx := context.Background()
	candles := testCandles()

	sc.Put(ctx, "BTCUSDT", candles, &analysis.Summary{Symbol: "BTCUSDT"})
	if len(store.setCalls) != 1 {
		t.Fatalf("expected 1 set call, got %d", len(store.setCalls))
	}
	if store.setCalls[0].TTL != DefaultSummaryTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultSummaryTTL, store.setCalls[0].TTL)
	}
}
