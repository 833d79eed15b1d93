package reportserver

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"surveylex/internal/store"
	"surveylex/internal/store/testing"
	"surveylex/internal/testutil"
)

// seedStore writes one session with a consent and a text response.
func seedStore(t *testing.T) *sql.DB {
	t.Helper()
	db, ctx := storetesting.Open(t)
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	write := store.PageWrite{
		Session:  store.SessionRecord{ID: "s-42", SurveyID: "sample", Status: "submitted", Pages: 1, StartedAt: at, UpdatedAt: at},
		Fragment: 0,
		Responses: []store.ResponseRecord{
			{SessionID: "s-42", Kind: "consent", Title: "Consent", Required: true, Completed: true, ValueJSON: `{"checked":true,"agreed":true}`, Revision: 2, CapturedAt: at},
			{SessionID: "s-42", Question: 1, Kind: "text", Title: "<b>Name</b>", Required: true, Completed: true, ValueJSON: `"Ada"`, Revision: 2, CapturedAt: at},
		},
	}
	if err := store.WritePage(ctx, db, write); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return db
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler, err := NewHandler(Config{DB: seedStore(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// TestNewHandlerRequiresDB verifies the handler refuses a nil store.
func TestNewHandlerRequiresDB(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected error for missing db")
	}
}

// TestIndexListsSessions verifies the HTML index links every session.
func TestIndexListsSessions(t *testing.T) {
	server := newTestServer(t)
	body := string(testutil.DoRequest(t, http.MethodGet, server.URL+"/", nil, http.StatusOK))
	if !strings.Contains(body, `href="/sessions/s-42"`) {
		t.Fatalf("expected session link in index:\n%s", body)
	}
}

// TestSessionPageEscapesTitles verifies response titles are HTML escaped.
func TestSessionPageEscapesTitles(t *testing.T) {
	server := newTestServer(t)
	body := string(testutil.DoRequest(t, http.MethodGet, server.URL+"/sessions/s-42", nil, http.StatusOK))
	if strings.Contains(body, "<b>Name</b>") || !strings.Contains(body, "&lt;b&gt;Name&lt;/b&gt;") {
		t.Fatalf("expected escaped title:\n%s", body)
	}
}

// TestAPIListsSessionsAndResponses verifies the JSON endpoints.
func TestAPIListsSessionsAndResponses(t *testing.T) {
	server := newTestServer(t)

	var sessions struct {
		Sessions []store.SessionRecord `json:"sessions"`
	}
	testutil.GetJSON(t, server.URL+"/api/sessions", &sessions)
	if len(sessions.Sessions) != 1 || sessions.Sessions[0].Status != "submitted" {
		t.Fatalf("unexpected sessions %+v", sessions.Sessions)
	}

	var responses struct {
		Responses []store.ResponseRecord `json:"responses"`
	}
	testutil.GetJSON(t, server.URL+"/api/sessions/s-42/responses", &responses)
	if len(responses.Responses) != 2 || responses.Responses[1].ValueJSON != `"Ada"` {
		t.Fatalf("unexpected responses %+v", responses.Responses)
	}
}

// TestAPIUnknownSession verifies missing sessions map to 404.
func TestAPIUnknownSession(t *testing.T) {
	server := newTestServer(t)
	testutil.DoRequest(t, http.MethodGet, server.URL+"/api/sessions/nope/responses", nil, http.StatusNotFound)
	testutil.DoRequest(t, http.MethodPost, server.URL+"/api/sessions", nil, http.StatusMethodNotAllowed)
}

// TestServeStopsOnCancel verifies graceful shutdown when the context ends.
func TestServeStopsOnCancel(t *testing.T) {
	ctx := testutil.Context(t, 0)
	ctx, cancel := context.WithCancel(ctx)
	db := seedStore(t)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, Config{Addr: "127.0.0.1:0", DB: db})
	}()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}
