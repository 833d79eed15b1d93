package upload

import (
	"time"

	"surveylex/internal/session"
	"surveylex/internal/survey"
)

// Batch is an immutable snapshot of one page of a survey run, taken on the
// UI loop and written by a Sink off the loop.
type Batch struct {
	SessionID  string            `json:"session_id" bson:"session_id"`
	SurveyID   string            `json:"survey_id" bson:"survey_id"`
	Fragment   int               `json:"fragment" bson:"fragment"`
	Revision   uint64            `json:"revision" bson:"revision"`
	Status     string            `json:"status" bson:"status"`
	Pages      int               `json:"pages" bson:"pages"`
	StartedAt  time.Time         `json:"started_at" bson:"started_at"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	CapturedAt time.Time         `json:"captured_at" bson:"captured_at"`
	Unlocked   bool              `json:"unlocked" bson:"unlocked"`
	Responses  []survey.Response `json:"responses" bson:"responses"`
}

// Result reports the outcome of writing one batch.
type Result struct {
	Fragment int
	Revision uint64
	Err      error
}

// Snapshot captures every loaded page of the run that is not uploaded.
func Snapshot(run *session.Run, now time.Time) []Batch {
	var finished *time.Time
	if at := run.FinishedAt(); !at.IsZero() {
		finished = &at
	}
	var out []Batch
	for _, p := range run.Pages() {
		if !p.Loaded() || p.Uploaded() {
			continue
		}
		out = append(out, Batch{
			SessionID:  run.ID(),
			SurveyID:   run.Survey().ID,
			Fragment:   p.Index(),
			Revision:   p.Revision(),
			Status:     string(run.Status()),
			Pages:      run.Len(),
			StartedAt:  run.StartedAt(),
			UpdatedAt:  run.UpdatedAt(),
			FinishedAt: finished,
			CapturedAt: now,
			Unlocked:   p.Unlocked(),
			Responses:  p.Fragment().Responses(),
		})
	}
	return out
}

// Acknowledge marks pages uploaded for every successful result whose
// revision is still current. It returns how many pages were marked.
func Acknowledge(run *session.Run, results []Result) int {
	marked := 0
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		if run.Page(result.Fragment).MarkUploaded(result.Revision) {
			marked++
		}
	}
	return marked
}
