package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"surveylex/internal/config"
)

func TestNewLoggerVerboseWritesStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "info"}, t.TempDir(), true, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeLog()
	logger.Debug("page shown", "fragment", 1)
	if !strings.Contains(stderr.String(), "page shown") {
		t.Fatalf("expected debug record on stderr, got %q", stderr.String())
	}
}

func TestNewLoggerAppendsToFile(t *testing.T) {
	root := t.TempDir()
	var stderr bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "warn", File: "logs/take.log"}, root, false, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "logs", "take.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("expected only warn records, got %q", string(data))
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected nothing on stderr, got %q", stderr.String())
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, _, err := newLogger(config.LogConfig{Level: "loud"}, t.TempDir(), false, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
