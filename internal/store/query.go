package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound is returned when a session id has no stored row.
var ErrSessionNotFound = errors.New("session not found")

// ListSessions returns stored sessions, most recently updated first.
func ListSessions(ctx context.Context, db *sql.DB) ([]SessionRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT session_id, survey_id, status, pages, started_at, updated_at, finished_at
		 FROM sessions ORDER BY updated_at DESC, session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// GetSession returns one stored session.
func GetSession(ctx context.Context, db *sql.DB, id string) (SessionRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT session_id, survey_id, status, pages, started_at, updated_at, finished_at
		 FROM sessions WHERE session_id = ?`, id)
	record, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return record, err
}

// ListResponses returns the responses of one session in question order.
func ListResponses(ctx context.Context, db *sql.DB, sessionID string) ([]ResponseRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT session_id, fragment, question, kind, COALESCE(type_name, ''), title, required, completed,
		        COALESCE(value_json, ''), revision, captured_at
		 FROM responses WHERE session_id = ? ORDER BY fragment, question`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []ResponseRecord
	for rows.Next() {
		var record ResponseRecord
		if err := rows.Scan(
			&record.SessionID,
			&record.Fragment,
			&record.Question,
			&record.Kind,
			&record.Type,
			&record.Title,
			&record.Required,
			&record.Completed,
			&record.ValueJSON,
			&record.Revision,
			&record.CapturedAt,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var record SessionRecord
	var finished sql.NullTime
	if err := row.Scan(
		&record.ID,
		&record.SurveyID,
		&record.Status,
		&record.Pages,
		&record.StartedAt,
		&record.UpdatedAt,
		&finished,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, err
		}
		return SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	if finished.Valid {
		at := finished.Time.In(time.UTC)
		record.FinishedAt = &at
	}
	record.StartedAt = record.StartedAt.In(time.UTC)
	record.UpdatedAt = record.UpdatedAt.In(time.UTC)
	return record, nil
}
