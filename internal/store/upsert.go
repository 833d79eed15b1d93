package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WritePage upserts the session row and every response of one page in a
// single transaction. Older revisions never overwrite newer ones.
func WritePage(ctx context.Context, db *sql.DB, write PageWrite) error {
	if ctx == nil {
		return errors.New("store: context is nil")
	}
	if db == nil {
		return errors.New("store: db is nil")
	}
	if write.Session.ID == "" {
		return errors.New("store: session id is required")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertSession(ctx, tx, write.Session); err != nil {
		return err
	}
	for _, response := range write.Responses {
		if response.SessionID != write.Session.ID || response.Fragment != write.Fragment {
			return fmt.Errorf("store: response %d.%d does not belong to page %d of session %s",
				response.Fragment+1, response.Question+1, write.Fragment+1, write.Session.ID)
		}
		if err := upsertResponse(ctx, tx, response); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit page: %w", err)
	}
	return nil
}

func upsertSession(ctx context.Context, tx *sql.Tx, session SessionRecord) error {
	var finished any
	if session.FinishedAt != nil {
		finished = session.FinishedAt.UTC()
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO sessions (session_id, survey_id, status, pages, started_at, updated_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id) DO UPDATE SET
		   status = excluded.status,
		   updated_at = excluded.updated_at,
		   finished_at = excluded.finished_at`,
		session.ID,
		session.SurveyID,
		session.Status,
		session.Pages,
		session.StartedAt.UTC(),
		session.UpdatedAt.UTC(),
		finished,
	); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func upsertResponse(ctx context.Context, tx *sql.Tx, response ResponseRecord) error {
	var value any
	if response.ValueJSON != "" {
		value = response.ValueJSON
	}
	var typeName any
	if response.Type != "" {
		typeName = response.Type
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO responses (session_id, fragment, question, kind, type_name, title, required, completed, value_json, revision, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id, fragment, question) DO UPDATE SET
		   completed = excluded.completed,
		   value_json = excluded.value_json,
		   revision = excluded.revision,
		   captured_at = excluded.captured_at
		 WHERE excluded.revision >= responses.revision`,
		response.SessionID,
		response.Fragment,
		response.Question,
		response.Kind,
		typeName,
		response.Title,
		response.Required,
		response.Completed,
		value,
		response.Revision,
		response.CapturedAt.UTC(),
	); err != nil {
		return fmt.Errorf("upsert response %d.%d: %w", response.Fragment+1, response.Question+1, err)
	}
	return nil
}
