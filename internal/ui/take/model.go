package take

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"surveylex/internal/page"
	"surveylex/internal/session"
	"surveylex/internal/survey"
	"surveylex/internal/upload"
)

// Options configures the survey-taking model.
type Options struct {
	NoColor bool
	// Syncer uploads stale pages. Nil disables uploads.
	Syncer *upload.Syncer
	Logger *slog.Logger
	// Context bounds upload calls.
	Context context.Context
	Now     func() time.Time
}

// Model is the Bubble Tea model for taking a survey.
type Model struct {
	run      *session.Run
	syncer   *upload.Syncer
	logger   *slog.Logger
	ctx      context.Context
	now      func() time.Time
	styles   styles
	help     help.Model
	viewport viewport.Model
	inputs   map[survey.Order]*textinput.Model
	rowLines []int
	scrolled map[int]uint64
	// failed holds the revision of each page whose last upload failed.
	failed map[int]uint64

	width     int
	height    int
	status    string
	uploading bool
	quitting  bool
	uploadErr error
}

// NewModel builds the model and shows the first page of a fresh run.
// Page content is loaded on the first update cycle.
func NewModel(run *session.Run, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if run.Status() == session.StatusActive && !run.Current().Visible() {
		run.Start()
	}
	return Model{
		run:      run,
		syncer:   opts.Syncer,
		logger:   logger,
		ctx:      ctx,
		now:      now,
		styles:   newStyles(opts.NoColor),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		inputs:   map[survey.Order]*textinput.Model{},
		scrolled: map[int]uint64{},
		failed:   map[int]uint64{},
		width:    80,
		height:   24,
	}
}

// Run returns the survey run driven by the model.
func (m Model) Run() *session.Run { return m.run }

// Status returns the current status line.
func (m Model) Status() string { return m.status }

// UploadErr returns the last upload failure, if any.
func (m Model) UploadErr() error { return m.uploadErr }

type loadMsg struct {
	fragment int
}

type uploadedMsg struct {
	results []upload.Result
}

func loadPage(fragment int) tea.Cmd {
	return func() tea.Msg { return loadMsg{fragment: fragment} }
}

// Init schedules loading of the current page.
func (m Model) Init() tea.Cmd {
	return loadPage(m.run.CurrentIndex())
}

// Update applies user input and background results to the run.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.help.Width = typed.Width
		for _, input := range m.inputs {
			input.Width = max(typed.Width-6, 10)
		}
	case loadMsg:
		m.load(typed.fragment)
	case uploadedMsg:
		m.uploading = false
		m.acknowledge(typed.results)
	case tea.KeyMsg:
		if cmd := m.handleKey(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.scheduleUpload(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.quitting && !m.uploading {
		cmds = append(cmds, tea.Quit)
	}
	m.layout()
	return m, tea.Batch(cmds...)
}

func (m *Model) load(fragment int) {
	p := m.run.Page(fragment)
	if p.Loaded() {
		return
	}
	p.Load()
	for _, presenter := range p.Presenters() {
		text, ok := presenter.(*page.TextPresenter)
		if !ok {
			continue
		}
		order := text.Question().Order()
		input := newField(text.Text().Placeholder(), text.Value(), max(m.width-6, 10))
		m.inputs[order] = input
		text.AttachKeyboard(fieldKeyboard{input: input})
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	if key.Matches(msg, keys.Abandon) {
		m.finish(m.run.Abandon(), "Survey abandoned.")
		return nil
	}
	if key.Matches(msg, keys.Submit) {
		m.submit()
		return nil
	}
	if key.Matches(msg, keys.Prev) {
		return m.navigate(m.run.Back())
	}
	if key.Matches(msg, keys.Next) {
		return m.navigate(m.run.Forward())
	}

	current := m.run.Current()
	if !current.Loaded() || m.run.Status() != session.StatusActive {
		return nil
	}
	before := m.run.CurrentIndex()
	switch {
	case key.Matches(msg, keys.Up):
		current.FocusPrevious()
	case key.Matches(msg, keys.Down):
		if focused := current.Focused(); focused < current.Len()-1 {
			current.Focus(focused + 1)
		}
	default:
		m.handleRowKey(current, msg)
	}
	if m.run.SubmitRequested() {
		m.submit()
		return nil
	}
	if m.run.CurrentIndex() != before {
		return m.afterPageChange()
	}
	return nil
}

func (m *Model) handleRowKey(current *page.Controller, msg tea.KeyMsg) {
	row := current.Focused()
	if row == page.NoFocus {
		return
	}
	switch presenter := current.Presenter(row).(type) {
	case *page.ConsentPresenter:
		switch {
		case key.Matches(msg, keys.Toggle):
			if presenter.Locked() {
				m.status = "Consent already given."
				return
			}
			presenter.Toggle()
		case key.Matches(msg, keys.Enter):
			if !presenter.CanAgree() && !presenter.Locked() {
				m.status = "Tick the checkbox to agree."
				return
			}
			if presenter.Locked() {
				current.Focus(row + 1)
				m.explainLock(current)
				return
			}
			presenter.Agree()
			m.explainLock(current)
		}
	case *page.TextPresenter:
		if key.Matches(msg, keys.Enter) {
			presenter.Next()
			m.explainLock(current)
			return
		}
		input := m.inputs[presenter.Question().Order()]
		if input == nil {
			return
		}
		presenter.BeginEditing()
		updated, _ := input.Update(msg)
		*input = updated
		presenter.SetValue(input.Value())
	case *page.UnsupportedPresenter:
		if key.Matches(msg, keys.Enter) {
			current.Focus(row + 1)
			m.explainLock(current)
		}
	}
}

// explainLock tells the user why focus did not leave the last row.
func (m *Model) explainLock(current *page.Controller) {
	if m.run.Current() == current && m.run.Status() == session.StatusActive && !current.Unlocked() &&
		current.Focused() == current.Len()-1 {
		m.status = "Answer the required questions to continue."
	}
}

func (m *Model) navigate(err error) tea.Cmd {
	switch {
	case err == nil:
		return m.afterPageChange()
	case errors.Is(err, session.ErrLocked):
		m.status = "Answer the required questions to continue."
	case errors.Is(err, session.ErrNoNextPage):
		m.status = "This is the last page. Press ctrl+s to submit."
	case errors.Is(err, session.ErrNoPreviousPage):
		m.status = "This is the first page."
	default:
		m.status = err.Error()
	}
	return nil
}

func (m *Model) afterPageChange() tea.Cmd {
	m.viewport.GotoTop()
	if !m.run.Current().Loaded() {
		return loadPage(m.run.CurrentIndex())
	}
	return nil
}

func (m *Model) submit() {
	err := m.run.Submit()
	if errors.Is(err, session.ErrIncomplete) {
		m.status = "Visit every page and answer the required questions before submitting."
		return
	}
	m.finish(err, "Survey submitted. Thank you!")
}

func (m *Model) finish(err error, message string) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = message
	m.quitting = true
	m.logger.Info("survey run closed", "session", m.run.ID(), "status", string(m.run.Status()))
}

func (m *Model) scheduleUpload() tea.Cmd {
	if m.syncer == nil || m.uploading {
		return nil
	}
	var batches []upload.Batch
	for _, batch := range upload.Snapshot(m.run, m.now()) {
		if rev, ok := m.failed[batch.Fragment]; ok && rev == batch.Revision {
			continue
		}
		batches = append(batches, batch)
	}
	if len(batches) == 0 {
		return nil
	}
	m.uploading = true
	syncer := m.syncer
	ctx := m.ctx
	return func() tea.Msg {
		return uploadedMsg{results: syncer.Push(ctx, batches)}
	}
}

func (m *Model) acknowledge(results []upload.Result) {
	upload.Acknowledge(m.run, results)
	var lastErr error
	for _, result := range results {
		if result.Err == nil {
			delete(m.failed, result.Fragment)
			continue
		}
		lastErr = result.Err
		m.failed[result.Fragment] = result.Revision
		m.logger.Error("upload failed", "session", m.run.ID(), "fragment", result.Fragment, "error", result.Err)
	}
	m.uploadErr = lastErr
	if lastErr != nil && !m.quitting {
		m.status = "Upload failed; your answers are kept and will be sent with the next change."
	}
}
