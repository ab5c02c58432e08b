package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("  ", true)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected no-op logger")
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "wardgrid.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("dataset loaded", zap.String("screen", "tickets"), zap.Int("records", 6))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "dataset loaded" || entry["screen"] != "tickets" || entry["app"] != "wardgrid" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNew_DebugEnablesDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardgrid.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug level not enabled")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Fatalf("OrNop did not return the given logger")
	}
}
