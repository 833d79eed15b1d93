package survey

import (
	"encoding/json"
	"fmt"
)

// Definition is the survey definition schema loaded from JSON or YAML.
type Definition struct {
	Version   int                  `json:"version" yaml:"version"`
	ID        string               `json:"id" yaml:"id"`
	Title     string               `json:"title,omitempty" yaml:"title,omitempty"`
	Fragments []FragmentDefinition `json:"fragments" yaml:"fragments"`
}

// FragmentDefinition lists the questions shown together on one page.
type FragmentDefinition struct {
	Questions []QuestionDefinition `json:"questions" yaml:"questions"`
}

// QuestionDefinition is one parsed question record. Type-specific fields are
// ignored by variants that do not use them; keys this schema does not know
// are kept in Extra so unsupported element types survive a round trip.
type QuestionDefinition struct {
	Type        string         `json:"type" yaml:"type"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Required    bool           `json:"required,omitempty" yaml:"required,omitempty"`
	ConsentText string         `json:"consent_text,omitempty" yaml:"consent_text,omitempty"`
	Prompt      string         `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Extra       map[string]any `json:"-" yaml:",inline"`
}

var knownQuestionKeys = []string{"type", "title", "required", "consent_text", "prompt"}

// UnmarshalJSON decodes the known keys and moves every other key into Extra.
func (q *QuestionDefinition) UnmarshalJSON(data []byte) error {
	type plain QuestionDefinition
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownQuestionKeys {
		delete(raw, key)
	}
	known.Extra = nil
	if len(raw) > 0 {
		known.Extra = make(map[string]any, len(raw))
		for key, value := range raw {
			var decoded any
			if err := json.Unmarshal(value, &decoded); err != nil {
				return fmt.Errorf("question field %q: %w", key, err)
			}
			known.Extra[key] = decoded
		}
	}
	*q = QuestionDefinition(known)
	return nil
}
