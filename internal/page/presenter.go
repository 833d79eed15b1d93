package page

import (
	"fmt"

	"surveylex/internal/survey"
)

// Presenter is the interactive unit for one question. Focus and Unfocus are
// idempotent.
type Presenter interface {
	Question() survey.Question
	Focus()
	Unfocus()
	Focused() bool
	Completed() bool
}

// Host is the owning page as seen by its presenters. It is handed to each
// presenter at construction.
type Host interface {
	// MarkStale records that responses on the page changed since the last upload.
	MarkStale()
	// RequestFocus moves page focus to the given presenter.
	RequestFocus(p Presenter)
	// FocusNext moves page focus to the row after the given presenter.
	FocusNext(p Presenter)
}

// Keyboard is the text input a TextPresenter drives.
type Keyboard interface {
	Focus()
	Blur()
}

// Factory builds the presenter for a question.
type Factory func(q survey.Question, host Host) Presenter

// NewPresenter builds the presenter matching the question variant.
func NewPresenter(q survey.Question, host Host) Presenter {
	switch typed := q.(type) {
	case *survey.Consent:
		return NewConsentPresenter(typed, host)
	case *survey.Text:
		return NewTextPresenter(typed, host)
	case *survey.Unsupported:
		return &UnsupportedPresenter{question: typed}
	default:
		panic(fmt.Sprintf("page: no presenter for question type %T", q))
	}
}

// ConsentPresenter presents a consent form: a checkbox and an agree action.
// Agreement needs the checkbox ticked first and locks both controls.
type ConsentPresenter struct {
	question *survey.Consent
	host     Host
	focused  bool
}

// NewConsentPresenter constructs a consent presenter.
func NewConsentPresenter(q *survey.Consent, host Host) *ConsentPresenter {
	return &ConsentPresenter{question: q, host: host}
}

func (p *ConsentPresenter) Question() survey.Question { return p.question }
func (p *ConsentPresenter) Consent() *survey.Consent  { return p.question }
func (p *ConsentPresenter) Completed() bool           { return p.question.Completed() }
func (p *ConsentPresenter) Focused() bool             { return p.focused }

// Focus has no visual effect on a consent form.
func (p *ConsentPresenter) Focus() { p.focused = true }

// Unfocus has no visual effect on a consent form.
func (p *ConsentPresenter) Unfocus() { p.focused = false }

// CanAgree reports whether the agree action is enabled.
func (p *ConsentPresenter) CanAgree() bool {
	return p.question.State() == survey.ConsentChecked
}

// Locked reports whether both controls are permanently disabled.
func (p *ConsentPresenter) Locked() bool { return p.question.Agreed() }

// Check sets the checkbox. Accepted toggles make the page stale.
func (p *ConsentPresenter) Check(checked bool) {
	if p.question.SetChecked(checked) {
		p.host.MarkStale()
	}
}

// Toggle flips the checkbox.
func (p *ConsentPresenter) Toggle() {
	p.Check(!p.question.Checked())
}

// Agree confirms the consent and moves on to the next row. It does nothing
// while the agree action is disabled.
func (p *ConsentPresenter) Agree() {
	if !p.question.Agree() {
		return
	}
	p.host.MarkStale()
	p.host.FocusNext(p)
}

// ButtonLabel returns the agree action caption.
func (p *ConsentPresenter) ButtonLabel() string {
	if p.question.Agreed() {
		return "Agreed"
	}
	return "Agree & Continue"
}

// TextPresenter presents a single-line text field.
type TextPresenter struct {
	question *survey.Text
	host     Host
	keyboard Keyboard
	focused  bool
}

// NewTextPresenter constructs a text presenter.
func NewTextPresenter(q *survey.Text, host Host) *TextPresenter {
	return &TextPresenter{question: q, host: host}
}

func (p *TextPresenter) Question() survey.Question { return p.question }
func (p *TextPresenter) Text() *survey.Text        { return p.question }
func (p *TextPresenter) Focused() bool             { return p.focused }
func (p *TextPresenter) Value() string             { return p.question.Value() }

// Completed is read from the field at the moment of the call.
func (p *TextPresenter) Completed() bool { return p.question.Completed() }

// AttachKeyboard connects the input that receives keystrokes while focused.
func (p *TextPresenter) AttachKeyboard(k Keyboard) {
	p.keyboard = k
	if k == nil {
		return
	}
	if p.focused {
		k.Focus()
	} else {
		k.Blur()
	}
}

// Focus requests keyboard input.
func (p *TextPresenter) Focus() {
	if p.focused {
		return
	}
	p.focused = true
	if p.keyboard != nil {
		p.keyboard.Focus()
	}
}

// Unfocus releases keyboard input.
func (p *TextPresenter) Unfocus() {
	if !p.focused {
		return
	}
	p.focused = false
	if p.keyboard != nil {
		p.keyboard.Blur()
	}
}

// BeginEditing is called when the user starts typing in the field.
func (p *TextPresenter) BeginEditing() {
	p.host.RequestFocus(p)
}

// SetValue stores the field contents; a change makes the page stale.
func (p *TextPresenter) SetValue(value string) {
	if p.question.SetValue(value) {
		p.host.MarkStale()
	}
}

// Next handles the input method's "next" action.
func (p *TextPresenter) Next() {
	p.host.FocusNext(p)
}

// UnsupportedPresenter is an inert placeholder row.
type UnsupportedPresenter struct {
	question *survey.Unsupported
	focused  bool
}

func (p *UnsupportedPresenter) Question() survey.Question { return p.question }
func (p *UnsupportedPresenter) Completed() bool           { return true }
func (p *UnsupportedPresenter) Focused() bool             { return p.focused }
func (p *UnsupportedPresenter) Focus()                    { p.focused = true }
func (p *UnsupportedPresenter) Unfocus()                  { p.focused = false }
