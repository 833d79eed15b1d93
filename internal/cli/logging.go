package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"surveylex/internal/config"
)

// newLogger builds the process logger. Verbose logging goes to stderr;
// otherwise records go to log.file, or nowhere when it is unset.
func newLogger(cfg config.LogConfig, root string, verbose bool, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	noop := func() error { return nil }
	if verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(handler), noop, nil
	}
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), noop, nil
	}
	path := config.ResolvePath(root, cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), file.Close, nil
}
