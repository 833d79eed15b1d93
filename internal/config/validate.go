package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a config for correctness and referenced files.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}
	if cfg.Survey == "" {
		collector.add("survey", "is required")
	} else {
		path := ResolvePath(baseDir, cfg.Survey)
		info, err := os.Stat(path)
		if err != nil {
			collector.add("survey", fmt.Sprintf("file not found at %q", cfg.Survey))
		} else if info.IsDir() {
			collector.add("survey", fmt.Sprintf("path %q is a directory", cfg.Survey))
		}
	}

	switch cfg.UI.Mode {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		collector.add("log.level", fmt.Sprintf("unsupported level %q", cfg.Log.Level))
	}

	validateUpload(&cfg.Upload, collector.add)
	return collector.result()
}

func validateUpload(upload *UploadConfig, add func(field, message string)) {
	if upload.Retries < 0 {
		add("upload.retries", "must be >= 0")
	}
	if upload.BackoffMs < 0 {
		add("upload.backoff_ms", "must be >= 0")
	}
	switch upload.Sink {
	case SinkNone:
	case SinkDuckDB:
		if strings.TrimSpace(upload.DuckDB.Path) == "" {
			add("upload.duckdb.path", "is required")
		}
	case SinkRedis:
		if strings.TrimSpace(upload.Redis.Addr) == "" {
			add("upload.redis.addr", "is required")
		}
		if upload.Redis.TTLSeconds < 0 {
			add("upload.redis.ttl_seconds", "must be >= 0")
		}
	case SinkMongo:
		if strings.TrimSpace(upload.Mongo.URI) == "" {
			add("upload.mongo.uri", "is required")
		}
	case SinkHTTP:
		if strings.TrimSpace(upload.HTTP.URL) == "" {
			add("upload.http.url", "is required")
		} else if parsed, err := url.Parse(upload.HTTP.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			add("upload.http.url", fmt.Sprintf("invalid url %q", upload.HTTP.URL))
		}
		if upload.HTTP.TimeoutSeconds < 0 {
			add("upload.http.timeout_seconds", "must be >= 0")
		}
	default:
		add("upload.sink", fmt.Sprintf("unsupported sink %q", upload.Sink))
	}
}

// ResolvePath joins a config-relative path onto the repo root.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
