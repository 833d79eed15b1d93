package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"surveylex/internal/page"
	"surveylex/internal/survey"
)

// Status is the lifecycle state of a survey run.
type Status string

const (
	StatusActive    Status = "active"
	StatusSubmitted Status = "submitted"
	StatusAbandoned Status = "abandoned"
)

var (
	// ErrLocked indicates the current page has incomplete required questions.
	ErrLocked = errors.New("current page has incomplete required questions")
	// ErrNoNextPage indicates the current page is the last one.
	ErrNoNextPage = errors.New("already on the last page")
	// ErrNoPreviousPage indicates the current page is the first one.
	ErrNoPreviousPage = errors.New("already on the first page")
	// ErrIncomplete indicates the survey cannot be submitted yet.
	ErrIncomplete = errors.New("survey has incomplete required questions")
	// ErrFinished indicates the run was already submitted or abandoned.
	ErrFinished = errors.New("survey run is finished")
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Run.
type Options struct {
	ID     string
	Clock  Clock
	Logger *slog.Logger
	// OnChange is called after a page becomes stale.
	OnChange func(fragment int)
}

// Run is one pass through a survey. It owns the page controllers, the
// current page and the set of pages shown so far.
type Run struct {
	id              string
	survey          *survey.Survey
	pages           []*page.Controller
	current         int
	visited         map[int]struct{}
	status          Status
	clock           Clock
	logger          *slog.Logger
	onChange        func(int)
	startedAt       time.Time
	updatedAt       time.Time
	finishedAt      time.Time
	submitRequested bool
}

// New starts a run over a built survey. The first page is not shown until Start.
func New(s *survey.Survey, opts Options) *Run {
	if s == nil || s.Len() == 0 {
		panic("session: survey has no fragments")
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := clock.Now()
	r := &Run{
		id:        id,
		survey:    s,
		visited:   map[int]struct{}{},
		status:    StatusActive,
		clock:     clock,
		logger:    logger.With("session", id),
		onChange:  opts.OnChange,
		startedAt: now,
		updatedAt: now,
	}
	r.pages = make([]*page.Controller, 0, s.Len())
	for _, fragment := range s.Fragments {
		r.pages = append(r.pages, page.NewController(fragment, page.Options{
			Owner:  r,
			Visits: r,
			Logger: r.logger,
		}))
	}
	return r
}

func (r *Run) ID() string                { return r.id }
func (r *Run) Survey() *survey.Survey    { return r.survey }
func (r *Run) Status() Status            { return r.status }
func (r *Run) StartedAt() time.Time      { return r.startedAt }
func (r *Run) UpdatedAt() time.Time      { return r.updatedAt }
func (r *Run) FinishedAt() time.Time     { return r.finishedAt }
func (r *Run) Len() int                  { return len(r.pages) }
func (r *Run) CurrentIndex() int         { return r.current }
func (r *Run) Current() *page.Controller { return r.pages[r.current] }

// Page returns the controller for a fragment.
func (r *Run) Page(fragment int) *page.Controller {
	if fragment < 0 || fragment >= len(r.pages) {
		panic(fmt.Sprintf("session: fragment %d out of range [0, %d)", fragment, len(r.pages)))
	}
	return r.pages[fragment]
}

// Pages returns every page controller in order.
func (r *Run) Pages() []*page.Controller {
	out := make([]*page.Controller, len(r.pages))
	copy(out, r.pages)
	return out
}

// Start shows the first page.
func (r *Run) Start() {
	r.logger.Info("survey run started", "survey", r.survey.ID, "pages", len(r.pages))
	r.pages[r.current].Appear()
}

// Visited implements page.Visits.
func (r *Run) Visited(fragment int) bool {
	_, ok := r.visited[fragment]
	return ok
}

// MarkVisited implements page.Visits.
func (r *Run) MarkVisited(fragment int) {
	r.visited[fragment] = struct{}{}
}

// VisitedCount returns how many pages were shown during the run.
func (r *Run) VisitedCount() int { return len(r.visited) }

// AdvancePast implements page.Owner. Leaving the current page forward
// happens only when it is unlocked; on the last page it becomes a request
// to submit.
func (r *Run) AdvancePast(fragment int) {
	if r.status != StatusActive || fragment != r.current {
		return
	}
	if !r.pages[fragment].Unlocked() {
		r.logger.Debug("advance refused, page locked", "fragment", fragment)
		return
	}
	if fragment == len(r.pages)-1 {
		r.submitRequested = true
		return
	}
	r.show(fragment + 1)
}

// ResponsesChanged implements page.Owner.
func (r *Run) ResponsesChanged(fragment int) {
	r.updatedAt = r.clock.Now()
	if r.onChange != nil {
		r.onChange(fragment)
	}
}

// SubmitRequested reports and clears a pending request to submit made by
// advancing past the last page.
func (r *Run) SubmitRequested() bool {
	requested := r.submitRequested
	r.submitRequested = false
	return requested
}

// CanGoForward reports whether forward navigation is currently permitted.
func (r *Run) CanGoForward() bool {
	return r.status == StatusActive &&
		r.current < len(r.pages)-1 &&
		r.pages[r.current].Loaded() &&
		r.pages[r.current].Unlocked()
}

// Forward moves to the next page when the current one is unlocked.
func (r *Run) Forward() error {
	if r.status != StatusActive {
		return ErrFinished
	}
	if r.current == len(r.pages)-1 {
		return ErrNoNextPage
	}
	current := r.pages[r.current]
	if !current.Loaded() || !current.Unlocked() {
		return ErrLocked
	}
	r.show(r.current + 1)
	return nil
}

// Back moves to the previous page. Going back is never gated.
func (r *Run) Back() error {
	if r.status != StatusActive {
		return ErrFinished
	}
	if r.current == 0 {
		return ErrNoPreviousPage
	}
	r.show(r.current - 1)
	return nil
}

func (r *Run) show(fragment int) {
	r.pages[r.current].Disappear()
	r.current = fragment
	r.logger.Debug("page shown", "fragment", fragment)
	r.pages[fragment].Appear()
}

// Complete reports whether every page is loaded and unlocked.
func (r *Run) Complete() bool {
	for _, p := range r.pages {
		if !p.Loaded() || !p.Unlocked() {
			return false
		}
	}
	return true
}

// Submit finishes the run once every page is unlocked.
func (r *Run) Submit() error {
	if r.status != StatusActive {
		return ErrFinished
	}
	if !r.Complete() {
		return ErrIncomplete
	}
	r.finish(StatusSubmitted)
	return nil
}

// Abandon finishes the run without submitting it.
func (r *Run) Abandon() error {
	if r.status != StatusActive {
		return ErrFinished
	}
	r.finish(StatusAbandoned)
	return nil
}

func (r *Run) finish(status Status) {
	r.pages[r.current].Disappear()
	r.status = status
	r.finishedAt = r.clock.Now()
	r.updatedAt = r.finishedAt
	r.visited = map[int]struct{}{}
	r.logger.Info("survey run finished", "status", string(status))
	for _, p := range r.pages {
		// Every loaded page is uploaded again with the final status.
		if p.Loaded() {
			p.MarkStale()
		}
	}
}
