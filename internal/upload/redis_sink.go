package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink stores each page batch as a JSON value.
type RedisSink struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, prefix string, ttl time.Duration) (*RedisSink, error) {
	addr = strings.TrimPrefix(addr, "redis://")
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisSink(client, prefix, ttl), nil
}

// NewRedisSink wraps an existing client. A zero ttl keeps keys forever.
func NewRedisSink(client *redis.Client, prefix string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) Name() string { return "redis" }

// Key returns the key a batch is stored under.
func (s *RedisSink) Key(sessionID string, fragment int) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, sessionID, fragment)
}

func (s *RedisSink) Write(ctx context.Context, batch Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(batch.SessionID, batch.Fragment), data, s.ttl).Err()
}

// Get loads a stored batch. It returns nil when none exists.
func (s *RedisSink) Get(ctx context.Context, sessionID string, fragment int) (*Batch, error) {
	data, err := s.client.Get(ctx, s.Key(sessionID, fragment)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return &batch, nil
}

func (s *RedisSink) Close(context.Context) error {
	return s.client.Close()
}
