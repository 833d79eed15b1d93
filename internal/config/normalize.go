package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultRetries        = 2
	DefaultBackoffMs      = 250
	DefaultDuckDBPath     = ".surveylex/responses.duckdb"
	DefaultRedisPrefix    = "surveylex"
	DefaultMongoDatabase  = "surveylex"
	DefaultMongoCollect   = "responses"
	DefaultHTTPTimeoutSec = 10
)

// Normalize trims values and fills defaults.
func Normalize(cfg *Config) {
	cfg.Survey = strings.TrimSpace(cfg.Survey)
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeAuto
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)

	upload := &cfg.Upload
	upload.Sink = strings.ToLower(strings.TrimSpace(upload.Sink))
	if upload.Sink == "" {
		upload.Sink = SinkNone
	}
	if upload.Retries == 0 {
		upload.Retries = DefaultRetries
	}
	if upload.BackoffMs == 0 {
		upload.BackoffMs = DefaultBackoffMs
	}
	switch upload.Sink {
	case SinkDuckDB:
		if strings.TrimSpace(upload.DuckDB.Path) == "" {
			upload.DuckDB.Path = DefaultDuckDBPath
		}
	case SinkRedis:
		if upload.Redis.KeyPrefix == "" {
			upload.Redis.KeyPrefix = DefaultRedisPrefix
		}
	case SinkMongo:
		if upload.Mongo.Database == "" {
			upload.Mongo.Database = DefaultMongoDatabase
		}
		if upload.Mongo.Collection == "" {
			upload.Mongo.Collection = DefaultMongoCollect
		}
	case SinkHTTP:
		if upload.HTTP.TimeoutSeconds == 0 {
			upload.HTTP.TimeoutSeconds = DefaultHTTPTimeoutSec
		}
	}
}
