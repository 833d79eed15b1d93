package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// GetJSON sends a GET request and decodes the JSON body into out.
func GetJSON(t testing.TB, url string, out any) {
	t.Helper()
	body := DoRequest(t, http.MethodGet, url, nil, http.StatusOK)
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}

// DoRequest executes an HTTP request with an optional JSON payload, checks
// the status code, and returns the body.
func DoRequest(t testing.TB, method, url string, payload []byte, wantStatus int) []byte {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("expected status %d for %s %s, got %d: %s", wantStatus, method, url, resp.StatusCode, string(body))
	}
	return body
}
