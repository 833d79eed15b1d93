package page

import (
	"fmt"
	"log/slog"

	"surveylex/internal/survey"
)

// NoFocus is the focused row when nothing on the page is focused.
const NoFocus = -1

// Owner is the page-sequence owner: the survey run that holds every page.
type Owner interface {
	// AdvancePast is called when focus is requested beyond the last row.
	AdvancePast(fragment int)
	// ResponsesChanged is called whenever the page becomes stale.
	ResponsesChanged(fragment int)
}

// Visits records which fragments have been shown during a survey run.
type Visits interface {
	Visited(fragment int) bool
	MarkVisited(fragment int)
}

// ScrollPosition is where the focused row should be placed in the viewport.
type ScrollPosition int

const (
	ScrollMiddle ScrollPosition = iota
	ScrollTop
)

// ScrollTarget is the most recent scroll request. Later requests replace
// earlier ones.
type ScrollTarget struct {
	Row      int
	Position ScrollPosition
	Seq      uint64
}

// Options configures a Controller.
type Options struct {
	Owner  Owner
	Visits Visits
	// NewPresenter overrides presenter construction. Defaults to NewPresenter.
	NewPresenter Factory
	Logger       *slog.Logger
}

// Controller owns the presenters of one fragment and the focus state.
type Controller struct {
	fragment   *survey.Fragment
	owner      Owner
	visits     Visits
	factory    Factory
	logger     *slog.Logger
	presenters []Presenter
	focused    int
	loaded     bool
	appeared   bool
	uploaded   bool
	revision   uint64
	scroll     ScrollTarget
}

// NewController constructs a controller for a fragment. Presenters are not
// created until Load.
func NewController(fragment *survey.Fragment, opts Options) *Controller {
	if fragment == nil {
		panic("page: fragment is nil")
	}
	if opts.Owner == nil || opts.Visits == nil {
		panic("page: owner and visits are required")
	}
	factory := opts.NewPresenter
	if factory == nil {
		factory = NewPresenter
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fragment: fragment,
		owner:    opts.Owner,
		visits:   opts.Visits,
		factory:  factory,
		logger:   logger.With("fragment", fragment.Index()),
		focused:  NoFocus,
		uploaded: true,
		scroll:   ScrollTarget{Row: NoFocus},
	}
}

// Fragment returns the fragment presented by the controller.
func (c *Controller) Fragment() *survey.Fragment { return c.fragment }

// Index returns the fragment index.
func (c *Controller) Index() int { return c.fragment.Index() }

// Loaded reports whether presenters have been created.
func (c *Controller) Loaded() bool { return c.loaded }

// Visible reports whether the page is currently shown.
func (c *Controller) Visible() bool { return c.appeared }

// Load creates one unfocused presenter per question. Repeated calls do nothing.
func (c *Controller) Load() {
	if c.loaded {
		return
	}
	c.presenters = make([]Presenter, 0, c.fragment.Len())
	for _, q := range c.fragment.Questions() {
		p := c.factory(q, c)
		p.Unfocus()
		c.presenters = append(c.presenters, p)
	}
	c.loaded = true
	c.logger.Debug("page content loaded", "rows", len(c.presenters))
	if c.appeared {
		c.onAppear()
	}
}

// Appear marks the page visible. Auto-focus runs once the page is both
// visible and loaded.
func (c *Controller) Appear() {
	c.appeared = true
	if c.loaded {
		c.onAppear()
	}
}

// Disappear marks the page hidden and releases input from the focused row.
// The focused row is kept and restored on the next appearance.
func (c *Controller) Disappear() {
	c.appeared = false
	if c.loaded && c.focused != NoFocus {
		c.presenters[c.focused].Unfocus()
	}
}

func (c *Controller) onAppear() {
	switch {
	case !c.visits.Visited(c.Index()):
		c.visits.MarkVisited(c.Index())
		if len(c.presenters) > 0 {
			c.Focus(0)
		}
	case len(c.presenters) == 1 && c.focused != 0:
		c.Focus(0)
	case c.focused != NoFocus:
		c.presenters[c.focused].Focus()
	}
}

// Len returns the number of rows. It panics before Load.
func (c *Controller) Len() int {
	c.mustBeLoaded("Len")
	return len(c.presenters)
}

// Presenter returns the presenter at row. It panics before Load or when row
// is out of range.
func (c *Controller) Presenter(row int) Presenter {
	c.mustBeLoaded("Presenter")
	if row < 0 || row >= len(c.presenters) {
		panic(fmt.Sprintf("page: row %d out of range [0, %d)", row, len(c.presenters)))
	}
	return c.presenters[row]
}

// Presenters returns the presenters in row order.
func (c *Controller) Presenters() []Presenter {
	c.mustBeLoaded("Presenters")
	out := make([]Presenter, len(c.presenters))
	copy(out, c.presenters)
	return out
}

// Focused returns the focused row or NoFocus.
func (c *Controller) Focused() int {
	c.mustBeLoaded("Focused")
	return c.focused
}

// Focus moves focus to row. Focusing the current row does nothing. A row at
// or beyond the end asks the owner to advance past this page and leaves the
// page focus unchanged.
func (c *Controller) Focus(row int) {
	c.mustBeLoaded("Focus")
	if row < 0 {
		panic(fmt.Sprintf("page: cannot focus row %d", row))
	}
	if row >= len(c.presenters) {
		c.logger.Debug("focus past last row", "row", row)
		c.owner.AdvancePast(c.Index())
		return
	}
	if row == c.focused {
		return
	}
	previous := c.focused
	c.focused = row
	if previous != NoFocus {
		c.presenters[previous].Unfocus()
	}
	c.presenters[row].Focus()

	position := ScrollMiddle
	if len(c.presenters) == 1 {
		position = ScrollTop
	}
	c.scroll = ScrollTarget{Row: row, Position: position, Seq: c.scroll.Seq + 1}
}

// FocusPrevious moves focus one row up, staying on the first row.
func (c *Controller) FocusPrevious() {
	c.mustBeLoaded("FocusPrevious")
	if c.focused > 0 {
		c.Focus(c.focused - 1)
	}
}

// ScrollTarget returns the latest scroll request.
func (c *Controller) ScrollTarget() ScrollTarget { return c.scroll }

// RequestFocus implements Host.
func (c *Controller) RequestFocus(p Presenter) {
	c.Focus(c.rowOf(p))
}

// FocusNext implements Host.
func (c *Controller) FocusNext(p Presenter) {
	c.Focus(c.rowOf(p) + 1)
}

// MarkStale implements Host.
func (c *Controller) MarkStale() {
	c.uploaded = false
	c.revision++
	c.owner.ResponsesChanged(c.Index())
}

func (c *Controller) rowOf(p Presenter) int {
	c.mustBeLoaded("rowOf")
	for i, candidate := range c.presenters {
		if candidate == p {
			return i
		}
	}
	panic("page: presenter does not belong to this page")
}

// Unlocked reports whether every required question is completed, which
// permits navigating forward.
func (c *Controller) Unlocked() bool {
	c.mustBeLoaded("Unlocked")
	for _, q := range c.fragment.Questions() {
		if q.Required() && !q.Completed() {
			return false
		}
	}
	return true
}

// AllCompleted reports whether every question, required or not, is completed.
func (c *Controller) AllCompleted() bool {
	c.mustBeLoaded("AllCompleted")
	for _, q := range c.fragment.Questions() {
		if !q.Completed() {
			return false
		}
	}
	return true
}

// Uploaded reports whether the page responses are in sync with the last upload.
func (c *Controller) Uploaded() bool { return c.uploaded }

// Revision increases every time the page becomes stale.
func (c *Controller) Revision() uint64 { return c.revision }

// MarkUploaded records a finished upload of the snapshot taken at revision.
// It reports false when the page changed after that snapshot.
func (c *Controller) MarkUploaded(revision uint64) bool {
	if revision != c.revision {
		return false
	}
	c.uploaded = true
	return true
}

func (c *Controller) mustBeLoaded(op string) {
	if !c.loaded {
		panic(fmt.Sprintf("page: %s called before content was loaded", op))
	}
}
