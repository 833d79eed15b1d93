package storetesting

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"surveylex/internal/store"
	"surveylex/internal/testutil"
)

const defaultTimeout = 2 * time.Second

// Open opens an in-memory store with the schema applied and closes it when
// the test ends.
func Open(t testing.TB) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	db, err := store.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, ctx
}
