package upload

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"surveylex/internal/survey"
	"surveylex/internal/testutil"
)

// TestRedisSinkWriteAndGet verifies pages are stored as JSON under a
// session-scoped key with the configured TTL.
func TestRedisSinkWriteAndGet(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := testutil.Context(t, 0)
	sink, err := OpenRedis(ctx, "redis://"+server.Addr(), "surveylex", time.Minute)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer sink.Close(ctx)

	run, clock := startSampleRun(t)
	consentPresenter(t, run).Toggle()
	batch := Snapshot(run, clock.Now())[0]
	if err := sink.Write(ctx, batch); err != nil {
		t.Fatalf("write: %v", err)
	}

	key := sink.Key("run-1", 0)
	if key != "surveylex:run-1:0" {
		t.Fatalf("expected surveylex:run-1:0, got %q", key)
	}
	if !server.Exists(key) {
		t.Fatalf("expected key %s to exist, got %v", key, server.Keys())
	}
	if ttl := server.TTL(key); ttl != time.Minute {
		t.Fatalf("expected ttl 1m, got %v", ttl)
	}

	got, err := sink.Get(ctx, "run-1", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Revision != batch.Revision || len(got.Responses) != 2 {
		t.Fatalf("unexpected stored batch %+v", got)
	}
	if got.Responses[0].Kind != survey.KindConsent {
		t.Fatalf("expected consent first, got %q", got.Responses[0].Kind)
	}

	server.FastForward(2 * time.Minute)
	expired, err := sink.Get(ctx, "run-1", 0)
	if err != nil || expired != nil {
		t.Fatalf("expected nil batch after expiry, got %+v, %v", expired, err)
	}
}

// TestRedisSinkZeroTTLKeepsKeys verifies a zero TTL stores without expiry.
func TestRedisSinkZeroTTLKeepsKeys(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := testutil.Context(t, 0)
	sink, err := OpenRedis(ctx, server.Addr(), "p", 0)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer sink.Close(ctx)

	if err := sink.Write(ctx, Batch{SessionID: "s", Fragment: 1, Revision: 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ttl := server.TTL("p:s:1"); ttl != 0 {
		t.Fatalf("expected no ttl, got %v", ttl)
	}
	missing, err := sink.Get(ctx, "s", 0)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing page, got %+v, %v", missing, err)
	}
}

// TestOpenRedisFailsWhenUnreachable verifies the connection is checked.
func TestOpenRedisFailsWhenUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()
	if _, err := OpenRedis(testutil.Context(t, 0), addr, "p", 0); err == nil {
		t.Fatalf("expected ping error")
	}
}
