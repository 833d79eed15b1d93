package page

import (
	"testing"

	"surveylex/internal/survey"
)

// fakeOwner records owner callbacks and keeps a visited set.
type fakeOwner struct {
	visited  map[int]bool
	advanced []int
	changed  []int
}

func newFakeOwner() *fakeOwner {
	return &fakeOwner{visited: map[int]bool{}}
}

func (o *fakeOwner) AdvancePast(fragment int)      { o.advanced = append(o.advanced, fragment) }
func (o *fakeOwner) ResponsesChanged(fragment int) { o.changed = append(o.changed, fragment) }
func (o *fakeOwner) Visited(fragment int) bool     { return o.visited[fragment] }
func (o *fakeOwner) MarkVisited(fragment int)      { o.visited[fragment] = true }

// recordingPresenter counts focus transitions.
type recordingPresenter struct {
	question survey.Question
	focused  bool
	focuses  int
	unfocus  int
}

func (p *recordingPresenter) Question() survey.Question { return p.question }
func (p *recordingPresenter) Completed() bool           { return p.question.Completed() }
func (p *recordingPresenter) Focused() bool             { return p.focused }
func (p *recordingPresenter) Focus() {
	p.focused = true
	p.focuses++
}
func (p *recordingPresenter) Unfocus() {
	p.focused = false
	p.unfocus++
}

// fakeKeyboard records keyboard requests from text presenters.
type fakeKeyboard struct {
	active bool
	calls  int
}

func (k *fakeKeyboard) Focus() {
	k.active = true
	k.calls++
}

func (k *fakeKeyboard) Blur() {
	k.active = false
	k.calls++
}

func buildFragment(t *testing.T, index int, questions ...survey.QuestionDefinition) *survey.Fragment {
	t.Helper()
	fragments := make([]survey.FragmentDefinition, index+1)
	for i := range fragments {
		fragments[i] = survey.FragmentDefinition{Questions: []survey.QuestionDefinition{{Type: "text", Title: "filler"}}}
	}
	fragments[index] = survey.FragmentDefinition{Questions: questions}
	s, err := survey.Build(survey.Definition{Version: 1, Fragments: fragments})
	if err != nil {
		t.Fatalf("build survey: %v", err)
	}
	return s.Fragments[index]
}

func consentDef(required bool) survey.QuestionDefinition {
	return survey.QuestionDefinition{Type: "consent", ConsentText: "We store your answers.", Required: required}
}

func textDef(title string, required bool) survey.QuestionDefinition {
	return survey.QuestionDefinition{Type: "text", Title: title, Required: required}
}

func newLoadedController(t *testing.T, owner *fakeOwner, fragment *survey.Fragment) *Controller {
	t.Helper()
	c := NewController(fragment, Options{Owner: owner, Visits: owner})
	c.Load()
	c.Appear()
	return c
}

func countFocused(c *Controller) int {
	count := 0
	for _, p := range c.Presenters() {
		if p.Focused() {
			count++
		}
	}
	return count
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
