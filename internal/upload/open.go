package upload

import (
	"context"
	"fmt"
	"time"

	"surveylex/internal/config"
)

// Open builds the sink selected by the upload config. It returns a nil sink
// when uploads are disabled. Relative paths resolve against baseDir.
func Open(ctx context.Context, cfg config.UploadConfig, baseDir string) (Sink, error) {
	switch cfg.Sink {
	case "", config.SinkNone:
		return nil, nil
	case config.SinkDuckDB:
		sink, err := OpenDuckDB(ctx, config.ResolvePath(baseDir, cfg.DuckDB.Path))
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.SinkRedis:
		sink, err := OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.SinkMongo:
		sink, err := OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.SinkHTTP:
		return NewHTTPSink(cfg.HTTP.URL, time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported upload sink %q", cfg.Sink)
	}
}

// OptionsFromConfig maps retry settings onto Syncer options.
func OptionsFromConfig(cfg config.UploadConfig) Options {
	return Options{
		Retries: cfg.Retries,
		Backoff: time.Duration(cfg.BackoffMs) * time.Millisecond,
	}
}
