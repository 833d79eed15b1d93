package survey

// ConsentState tracks agreement progress: unchecked → checked → agreed.
// Agreed is terminal.
type ConsentState int

const (
	ConsentUnchecked ConsentState = iota
	ConsentChecked
	ConsentAgreed
)

func (s ConsentState) String() string {
	switch s {
	case ConsentUnchecked:
		return "unchecked"
	case ConsentChecked:
		return "checked"
	case ConsentAgreed:
		return "agreed"
	default:
		return "unknown"
	}
}

// DefaultConsentTitle is shown when a consent record has no title.
const DefaultConsentTitle = "Consent"

// DefaultConsentPrompt labels the checkbox when the record has no prompt.
const DefaultConsentPrompt = "I have read and understood the information above."

// Consent is a consent form. It completes only once the checkbox is ticked
// and the agreement is confirmed, and cannot be withdrawn afterwards.
type Consent struct {
	base
	text   string
	prompt string
	state  ConsentState
}

// ConsentValue is the response payload of a consent question.
type ConsentValue struct {
	Checked bool `json:"checked" yaml:"checked" bson:"checked"`
	Agreed  bool `json:"agreed" yaml:"agreed" bson:"agreed"`
}

func (c *Consent) Kind() Kind          { return KindConsent }
func (c *Consent) Text() string        { return c.text }
func (c *Consent) Prompt() string      { return c.prompt }
func (c *Consent) State() ConsentState { return c.state }
func (c *Consent) Checked() bool       { return c.state != ConsentUnchecked }
func (c *Consent) Agreed() bool        { return c.state == ConsentAgreed }

// Completed is true once the consent has been agreed to.
func (c *Consent) Completed() bool { return c.state == ConsentAgreed }

// SetChecked toggles the checkbox. It reports whether the state changed;
// after agreement the checkbox is locked and nothing changes.
func (c *Consent) SetChecked(checked bool) bool {
	if c.state == ConsentAgreed {
		return false
	}
	next := ConsentUnchecked
	if checked {
		next = ConsentChecked
	}
	if next == c.state {
		return false
	}
	c.state = next
	return true
}

// Agree confirms the consent. It is refused while the checkbox is unchecked
// and is a no-op once agreed.
func (c *Consent) Agree() bool {
	if c.state != ConsentChecked {
		return false
	}
	c.state = ConsentAgreed
	return true
}

func (c *Consent) Response() Response {
	return c.response(KindConsent, c.Completed(), ConsentValue{
		Checked: c.Checked(),
		Agreed:  c.Agreed(),
	})
}
