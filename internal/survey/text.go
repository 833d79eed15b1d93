package survey

// Text is a free-text question. Completion is derived from the field: it is
// complete exactly when the value is non-empty, so clearing the field
// un-completes it.
type Text struct {
	base
	value string
}

func (t *Text) Kind() Kind      { return KindText }
func (t *Text) Value() string   { return t.value }
func (t *Text) Completed() bool { return t.value != "" }

// Placeholder returns the hint shown inside an empty field.
func (t *Text) Placeholder() string {
	if t.required {
		return "Required"
	}
	return "Optional"
}

// SetValue replaces the field contents and reports whether they changed.
func (t *Text) SetValue(value string) bool {
	if value == t.value {
		return false
	}
	t.value = value
	return true
}

func (t *Text) Response() Response {
	return t.response(KindText, t.Completed(), t.value)
}
