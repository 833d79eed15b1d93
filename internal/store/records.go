package store

import "time"

// SessionRecord is one row of the sessions table.
type SessionRecord struct {
	ID         string     `json:"id" yaml:"id"`
	SurveyID   string     `json:"survey_id" yaml:"survey_id"`
	Status     string     `json:"status" yaml:"status"`
	Pages      int        `json:"pages" yaml:"pages"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	UpdatedAt  time.Time  `json:"updated_at" yaml:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// ResponseRecord is one stored question response.
type ResponseRecord struct {
	SessionID  string    `json:"session_id" yaml:"session_id"`
	Fragment   int       `json:"fragment" yaml:"fragment"`
	Question   int       `json:"question" yaml:"question"`
	Kind       string    `json:"kind" yaml:"kind"`
	Type       string    `json:"type,omitempty" yaml:"type,omitempty"`
	Title      string    `json:"title" yaml:"title"`
	Required   bool      `json:"required" yaml:"required"`
	Completed  bool      `json:"completed" yaml:"completed"`
	ValueJSON  string    `json:"value,omitempty" yaml:"value,omitempty"`
	Revision   uint64    `json:"revision" yaml:"revision"`
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
}

// PageWrite replaces the stored state of one page of a session.
type PageWrite struct {
	Session   SessionRecord
	Fragment  int
	Responses []ResponseRecord
}
