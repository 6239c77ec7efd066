package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := &Logger{
		output:     &buf,
		level:      level,
		component:  "test",
		jsonFormat: true,
		fields:     make(map[string]interface{}),
	}
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  Level
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"WARN", WARN},
		{"warning", WARN},
		{"ERROR", ERROR},
		{"FATAL", FATAL},
		{"nonsense", INFO},
		{"", INFO},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	l, buf := newBufferLogger(DEBUG)

	l.Info("analysis complete", "symbol", "BTCUSDT", "candles", 250)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%s)", err, buf.String())
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "analysis complete" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.Component != "test" {
		t.Errorf("expected component test, got %s", entry.Component)
	}
	if entry.Fields["symbol"] != "BTCUSDT" {
		t.Errorf("expected symbol field, got %v", entry.Fields)
	}
	if entry.Fields["candles"] != float64(250) {
		t.Errorf("expected candles field 250, got %v", entry.Fields["candles"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(WARN)

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("messages below WARN should be dropped, got %q", buf.String())
	}

	l.Warn("visible")
	if buf.Len() == 0 {
		t.Error("WARN message should be written")
	}
}

func TestPrintfStyleArgs(t *testing.T) {
	l, buf := newBufferLogger(DEBUG)

	// Odd arg count means printf formatting, not key-value pairs
	l.Info("loaded %d candles", 200)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Message != "loaded 200 candles" {
		t.Errorf("expected formatted message, got %q", entry.Message)
	}
}

func TestErrorArgsRenderAsStrings(t *testing.T) {
	l, buf := newBufferLogger(DEBUG)

	l.Warn("cache write failed", "error", errFixture("connection reset"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Fields["error"] != "connection reset" {
		t.Errorf("expected error string field, got %v", entry.Fields["error"])
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }

func TestCloneIndependence(t *testing.T) {
	base, buf := newBufferLogger(DEBUG)

	derived := base.WithComponent("cache").WithTraceID("abc123").WithFields(map[string]interface{}{"key": "k1"})
	if base.component != "test" || base.traceID != "" || len(base.fields) != 0 {
		t.Error("deriving a logger must not mutate its parent")
	}

	derived.Info("hit")
	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Component != "cache" || entry.TraceID != "abc123" || entry.Fields["key"] != "k1" {
		t.Errorf("derived logger lost settings: %+v", entry)
	}
}

func TestAnalysisContext(t *testing.T) {
	l := AnalysisContext("BTCUSDT", 250)

	if l.component != "analysis" {
		t.Errorf("expected component analysis, got %s", l.component)
	}
	if l.fields["symbol"] != "BTCUSDT" || l.fields["candles"] != 250 {
		t.Errorf("unexpected fields: %v", l.fields)
	}
}

func TestCacheContext(t *testing.T) {
	l := CacheContext("get", "analysis:BTCUSDT:250:deadbeef")

	if l.component != "cache" {
		t.Errorf("expected component cache, got %s", l.component)
	}
	if l.fields["operation"] != "get" {
		t.Errorf("unexpected fields: %v", l.fields)
	}
}

func TestGenerateTraceID(t *testing.T) {
	a := GenerateTraceID()
	b := GenerateTraceID()

	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d (%s)", len(a), a)
	}
	if strings.ToLower(a) != a {
		t.Errorf("trace ID should be lowercase hex: %s", a)
	}
	if a == b {
		t.Error("consecutive trace IDs should differ")
	}
}
