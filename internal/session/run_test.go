package session

import (
	"errors"
	"testing"
	"time"

	"surveylex/internal/page"
	"surveylex/internal/survey"
	"surveylex/internal/testutil"
)

func buildSurvey(t *testing.T, fragments ...[]survey.QuestionDefinition) *survey.Survey {
	t.Helper()
	def := survey.Definition{Version: 1, ID: "test"}
	for _, questions := range fragments {
		def.Fragments = append(def.Fragments, survey.FragmentDefinition{Questions: questions})
	}
	s, err := survey.Build(def)
	if err != nil {
		t.Fatalf("build survey: %v", err)
	}
	return s
}

func consent() survey.QuestionDefinition {
	return survey.QuestionDefinition{Type: "consent", ConsentText: "terms", Required: true}
}

func text(title string, required bool) survey.QuestionDefinition {
	return survey.QuestionDefinition{Type: "text", Title: title, Required: required}
}

// startRun starts a run and loads its first page the way the UI loop does.
func startRun(t *testing.T, s *survey.Survey, opts Options) *Run {
	t.Helper()
	run := New(s, opts)
	run.Start()
	run.Current().Load()
	return run
}

// TestForwardGatedByUnlock verifies navigation waits for required questions.
func TestForwardGatedByUnlock(t *testing.T) {
	run := startRun(t, buildSurvey(t,
		[]survey.QuestionDefinition{consent()},
		[]survey.QuestionDefinition{text("Name", true), text("Notes", false)},
	), Options{})

	if err := run.Forward(); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if run.CanGoForward() {
		t.Fatalf("locked page must not allow forward navigation")
	}
	if err := run.Back(); !errors.Is(err, ErrNoPreviousPage) {
		t.Fatalf("expected ErrNoPreviousPage, got %v", err)
	}

	presenter := run.Current().Presenter(0).(*page.ConsentPresenter)
	presenter.Check(true)
	presenter.Agree()
	if run.CurrentIndex() != 1 {
		t.Fatalf("agreeing on the last row should advance the page, got %d", run.CurrentIndex())
	}
	if run.Page(0).Visible() || !run.Page(1).Visible() {
		t.Fatalf("expected page 1 to be the only visible page")
	}
	run.Current().Load()
	if run.Current().Focused() != 0 {
		t.Fatalf("first visit must focus row 0")
	}
	if err := run.Forward(); !errors.Is(err, ErrNoNextPage) {
		t.Fatalf("expected ErrNoNextPage, got %v", err)
	}
}

// TestRevisitKeepsFocus verifies visited pages restore their focus state.
func TestRevisitKeepsFocus(t *testing.T) {
	run := startRun(t, buildSurvey(t,
		[]survey.QuestionDefinition{text("a", false), text("b", false)},
		[]survey.QuestionDefinition{text("c", false), text("d", false)},
	), Options{})
	run.Current().Focus(1)
	if err := run.Forward(); err != nil {
		t.Fatalf("forward: %v", err)
	}
	run.Current().Load()
	if err := run.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if run.Current().Focused() != 1 || !run.Current().Presenter(1).Focused() {
		t.Fatalf("expected row 1 to be refocused on revisit")
	}
	if run.VisitedCount() != 2 {
		t.Fatalf("expected 2 visited pages, got %d", run.VisitedCount())
	}
}

// TestAdvancePastLastPageRequestsSubmit verifies "next" on the final row.
func TestAdvancePastLastPageRequestsSubmit(t *testing.T) {
	run := startRun(t, buildSurvey(t, []survey.QuestionDefinition{text("Name", true)}), Options{})
	presenter := run.Current().Presenter(0).(*page.TextPresenter)
	presenter.Next()
	if run.SubmitRequested() {
		t.Fatalf("locked page must not request submission")
	}
	presenter.SetValue("Ada")
	presenter.Next()
	if !run.SubmitRequested() {
		t.Fatalf("expected a submit request")
	}
	if run.SubmitRequested() {
		t.Fatalf("submit request must be consumed")
	}
}

// TestSubmitLifecycle verifies submission requirements and teardown.
func TestSubmitLifecycle(t *testing.T) {
	clock := testutil.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	var changes []int
	run := startRun(t, buildSurvey(t, []survey.QuestionDefinition{text("Name", true)}), Options{
		ID:       "run-1",
		Clock:    clock,
		OnChange: func(fragment int) { changes = append(changes, fragment) },
	})
	if run.ID() != "run-1" || run.Status() != StatusActive {
		t.Fatalf("unexpected run header %s %s", run.ID(), run.Status())
	}
	if err := run.Submit(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	clock.Advance(time.Minute)
	run.Current().Presenter(0).(*page.TextPresenter).SetValue("Ada")
	if !run.UpdatedAt().Equal(clock.Now()) {
		t.Fatalf("expected updated time to follow changes")
	}
	clock.Advance(time.Minute)
	if err := run.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if run.Status() != StatusSubmitted || !run.FinishedAt().Equal(clock.Now()) {
		t.Fatalf("unexpected final state %s at %s", run.Status(), run.FinishedAt())
	}
	if run.VisitedCount() != 0 {
		t.Fatalf("visited set must be cleared when the run ends")
	}
	if len(changes) != 2 {
		t.Fatalf("expected edit and submit to notify, got %v", changes)
	}
	if err := run.Abandon(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	if err := run.Forward(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
}

// TestAbandon verifies an incomplete run can be abandoned.
func TestAbandon(t *testing.T) {
	run := startRun(t, buildSurvey(t, []survey.QuestionDefinition{consent()}), Options{})
	if err := run.Abandon(); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if run.Status() != StatusAbandoned {
		t.Fatalf("expected abandoned status, got %s", run.Status())
	}
	if run.Current().Uploaded() {
		t.Fatalf("abandoning must mark loaded pages for upload")
	}
}

// TestRunsHaveSeparateVisitedSets verifies visits are scoped to a run.
func TestRunsHaveSeparateVisitedSets(t *testing.T) {
	s := buildSurvey(t, []survey.QuestionDefinition{text("a", false), text("b", false)})
	first := startRun(t, s, Options{})
	second := New(s, Options{})
	if !first.Visited(0) || second.Visited(0) {
		t.Fatalf("visits must not leak between runs")
	}
	if first.ID() == second.ID() {
		t.Fatalf("runs must get distinct ids")
	}
}
