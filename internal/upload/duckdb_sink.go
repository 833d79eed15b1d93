package upload

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"surveylex/internal/store"
)

// DuckDBSink writes batches into the local response store.
type DuckDBSink struct {
	db    *sql.DB
	owned bool
}

// OpenDuckDB opens (and creates) the store at path.
func OpenDuckDB(ctx context.Context, path string) (*DuckDBSink, error) {
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &DuckDBSink{db: db, owned: true}, nil
}

// NewDuckDBSink writes into an already open store. Close leaves db open.
func NewDuckDBSink(db *sql.DB) *DuckDBSink {
	return &DuckDBSink{db: db}
}

func (s *DuckDBSink) Name() string { return "duckdb" }

func (s *DuckDBSink) Write(ctx context.Context, batch Batch) error {
	write, err := pageWrite(batch)
	if err != nil {
		return err
	}
	return store.WritePage(ctx, s.db, write)
}

func (s *DuckDBSink) Close(context.Context) error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func pageWrite(batch Batch) (store.PageWrite, error) {
	write := store.PageWrite{
		Session: store.SessionRecord{
			ID:         batch.SessionID,
			SurveyID:   batch.SurveyID,
			Status:     batch.Status,
			Pages:      batch.Pages,
			StartedAt:  batch.StartedAt,
			UpdatedAt:  batch.UpdatedAt,
			FinishedAt: batch.FinishedAt,
		},
		Fragment:  batch.Fragment,
		Responses: make([]store.ResponseRecord, 0, len(batch.Responses)),
	}
	for _, response := range batch.Responses {
		var value string
		if response.Value != nil {
			data, err := json.Marshal(response.Value)
			if err != nil {
				return store.PageWrite{}, fmt.Errorf("encode response %d.%d: %w", response.Fragment+1, response.Question+1, err)
			}
			value = string(data)
		}
		write.Responses = append(write.Responses, store.ResponseRecord{
			SessionID:  batch.SessionID,
			Fragment:   response.Fragment,
			Question:   response.Question,
			Kind:       string(response.Kind),
			Type:       response.Type,
			Title:      response.Title,
			Required:   response.Required,
			Completed:  response.Completed,
			ValueJSON:  value,
			Revision:   batch.Revision,
			CapturedAt: batch.CapturedAt,
		})
	}
	return write, nil
}
