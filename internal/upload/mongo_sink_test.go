package upload

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// TestMongoSink verifies pages are upserted per session and fragment and
// that Get reports missing pages as nil.
func TestMongoSink(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("write upserts by session and fragment", func(mt *mtest.T) {
		sink := NewMongoSink(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "generated"}}}},
		))

		run, clock := startSampleRun(mt.T)
		consentPresenter(mt.T, run).Toggle()
		batch := Snapshot(run, clock.Now())[0]
		if err := sink.Write(context.Background(), batch); err != nil {
			mt.Fatalf("write: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "update" {
			mt.Fatalf("expected an update command, got %+v", started)
		}
		if upsert, ok := started.Command.Lookup("updates", "0", "upsert").BooleanOK(); !ok || !upsert {
			mt.Fatalf("expected upsert:true in %s", started.Command)
		}
		if id, ok := started.Command.Lookup("updates", "0", "q", "session_id").StringValueOK(); !ok || id != "run-1" {
			mt.Fatalf("expected filter on session run-1, got %s", started.Command)
		}
		if id, ok := started.Command.Lookup("updates", "0", "u", "session_id").StringValueOK(); !ok || id != "run-1" {
			mt.Fatalf("expected replacement document for run-1, got %s", started.Command)
		}
		if err := sink.Close(context.Background()); err != nil {
			mt.Fatalf("close must leave a shared client alone: %v", err)
		}
	})

	mt.Run("get decodes a stored page", func(mt *mtest.T) {
		sink := NewMongoSink(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "session_id", Value: "run-1"},
			{Key: "fragment", Value: 1},
			{Key: "revision", Value: int64(3)},
			{Key: "status", Value: "active"},
		}))

		got, err := sink.Get(context.Background(), "run-1", 1)
		if err != nil {
			mt.Fatalf("get: %v", err)
		}
		if got == nil || got.SessionID != "run-1" || got.Fragment != 1 || got.Revision != 3 {
			mt.Fatalf("unexpected batch %+v", got)
		}
	})

	mt.Run("get returns nil for a missing page", func(mt *mtest.T) {
		sink := NewMongoSink(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := sink.Get(context.Background(), "run-1", 5)
		if err != nil || got != nil {
			mt.Fatalf("expected nil batch, got %+v, %v", got, err)
		}
	})
}
