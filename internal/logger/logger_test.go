package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"Error":   "ERROR",
		"INFO":    "INFO",
		"verbose": "INFO",
	}
	for in, want := range cases {
		if got := parseLogLevel(in).String(); got != want {
			t.Errorf("parseLogLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := initWithWriter(LogConfig{Level: "INFO", Format: "json"}, &buf); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	Info(context.Background(), "Backfill finished", "symbol", "AAPL", "rows", 8)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "Backfill finished" {
		t.Errorf("Expected msg 'Backfill finished', got %v", entry["msg"])
	}
	if entry["symbol"] != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %v", entry["symbol"])
	}
	if _, ok := entry["source"]; ok {
		t.Error("Expected no source group without detailed logging")
	}
}

func TestDebugRequiresDetailedLogging(t *testing.T) {
	var buf bytes.Buffer
	_ = initWithWriter(LogConfig{Level: "DEBUG", Format: "text"}, &buf)

	Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug log to be dropped, got %q", buf.String())
	}

	_ = initWithWriter(LogConfig{Level: "INFO", Format: "text", DetailedLogging: true}, &buf)
	Debug(context.Background(), "visible")
	out := buf.String()
	if !strings.Contains(out, "visible") {
		t.Errorf("Expected debug log with detailed logging, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("Expected caller file in source, got %q", out)
	}
	detailedLogging = false
}

func TestErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	_ = initWithWriter(LogConfig{Level: "INFO", Format: "json"}, &buf)

	ErrorWithErr(context.Background(), "Fetch failed", errors.New("timeout"), "quarter", "2024-Q1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line: %v", err)
	}
	if entry["error"] != "timeout" {
		t.Errorf("Expected error 'timeout', got %v", entry["error"])
	}
	if entry["level"] != "ERROR" {
		t.Errorf("Expected level ERROR, got %v", entry["level"])
	}
}

func TestOperationTimerWithoutTracing(t *testing.T) {
	var buf bytes.Buffer
	_ = initWithWriter(LogConfig{Level: "INFO", Format: "json"}, &buf)

	op := StartOperation(context.Background(), "financials.test", "symbol", "MSFT")
	if op.Context() == nil {
		t.Fatal("Expected operation context")
	}
	op.End("rows", 3)
	if buf.Len() != 0 {
		t.Errorf("Expected no output for a successful operation, got %q", buf.String())
	}

	op = StartOperation(context.Background(), "financials.test")
	op.EndWithError(errors.New("boom"))
	if !strings.Contains(buf.String(), "Operation failed") {
		t.Errorf("Expected failure log, got %q", buf.String())
	}
}
