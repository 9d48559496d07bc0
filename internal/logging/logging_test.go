package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"WaRn":    slog.LevelWarn,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, closer, err := New("INFO", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("tagging finished", "document", "doc-1", "mappings", 3)
	if err := closer(); err != nil {
		t.Fatalf("closer failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	var entry map[string]any
	line := strings.TrimSpace(string(data))
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if entry["msg"] != "tagging finished" || entry["document"] != "doc-1" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, closer, err := New("ERROR", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("dropped")
	logger.Error("kept")
	if err := closer(); err != nil {
		t.Fatalf("closer failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "dropped") {
		t.Error("Expected INFO entry filtered at ERROR level")
	}
	if !strings.Contains(content, "kept") {
		t.Error("Expected ERROR entry written")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	// Must not panic or write anywhere visible
	logger.Error("nothing to see")
}
