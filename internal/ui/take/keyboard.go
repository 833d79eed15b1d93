package take

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// fieldKeyboard lets a text presenter drive the focus of its input.
type fieldKeyboard struct {
	input *textinput.Model
}

func (k fieldKeyboard) Focus() { _ = k.input.Focus() }
func (k fieldKeyboard) Blur()  { k.input.Blur() }

func newField(placeholder, value string, width int) *textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = placeholder
	input.SetValue(value)
	input.Cursor.SetMode(cursor.CursorStatic)
	if width > 0 {
		input.Width = width
	}
	input.Blur()
	return &input
}
