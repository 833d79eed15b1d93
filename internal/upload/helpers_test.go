package upload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"surveylex/internal/page"
	"surveylex/internal/session"
	"surveylex/internal/survey"
	"surveylex/internal/testutil"
)

var epoch = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

// startSampleRun starts a run over the shared sample survey with page one loaded.
func startSampleRun(t *testing.T) (*session.Run, *testutil.FakeClock) {
	t.Helper()
	def, err := survey.ParseDefinition([]byte(testutil.ConsentAndTextSurvey))
	if err != nil {
		t.Fatalf("parse survey: %v", err)
	}
	s, err := survey.Build(def)
	if err != nil {
		t.Fatalf("build survey: %v", err)
	}
	clock := testutil.NewFakeClock(epoch)
	run := session.New(s, session.Options{ID: "run-1", Clock: clock})
	run.Start()
	run.Current().Load()
	return run, clock
}

func consentPresenter(t *testing.T, run *session.Run) *page.ConsentPresenter {
	t.Helper()
	p, ok := run.Page(0).Presenter(0).(*page.ConsentPresenter)
	if !ok {
		t.Fatalf("expected consent presenter on row 0")
	}
	return p
}

var errSinkDown = errors.New("sink down")

// flakySink fails the first failures writes and records the rest.
type flakySink struct {
	mu       sync.Mutex
	failures int
	attempts int
	written  []Batch
}

func (s *flakySink) Name() string { return "flaky" }

func (s *flakySink) Write(_ context.Context, batch Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.failures > 0 {
		s.failures--
		return errSinkDown
	}
	s.written = append(s.written, batch)
	return nil
}

func (s *flakySink) Close(context.Context) error { return nil }
