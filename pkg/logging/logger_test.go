package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestJSONLogger_LevelFiltering tests that messages below the level are dropped
func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "warn message") {
		t.Errorf("Expected first line to be the warning, got %q", lines[0])
	}
}

// TestJSONLogger_Fields tests that fields appear in the JSON output
func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("shortest path computed",
		Operation("shortest_path"),
		NodeID("r1"),
		Count(3),
	)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if entry.Message != "shortest path computed" {
		t.Errorf("Expected message 'shortest path computed', got %q", entry.Message)
	}
	if entry.Fields["operation"] != "shortest_path" {
		t.Errorf("Expected operation field, got %v", entry.Fields)
	}
	if entry.Fields["node_id"] != "r1" {
		t.Errorf("Expected node_id field, got %v", entry.Fields)
	}
}

// TestJSONLogger_With tests child loggers inherit pre-set fields
func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("impact"))
	child.Info("analysis complete")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if entry.Fields["component"] != "impact" {
		t.Errorf("Expected component field from parent, got %v", entry.Fields)
	}
}

// TestErrorField_Nil tests the Error field constructor with a nil error
func TestErrorField_Nil(t *testing.T) {
	f := Error(nil)
	if f.Value != nil {
		t.Errorf("Expected nil value for nil error, got %v", f.Value)
	}

	f = Error(errors.New("boom"))
	if f.Value != "boom" {
		t.Errorf("Expected 'boom', got %v", f.Value)
	}
}

// TestTimedOperation_End tests that the timer logs a latency field
func TestTimedOperation_End(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "blast radius", Operation("blast_radius"))
	timer.End()

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Errorf("Expected latency field, got %v", entry.Fields)
	}
}
