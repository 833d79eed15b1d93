package survey

import (
	"fmt"
	"strings"
)

// Issue captures a structural problem in a survey definition.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more structural issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("survey definition validation failed: %s", strings.Join(parts, "; "))
}

// HasField reports whether any issue names the given field path.
func (err *ValidationError) HasField(field string) bool {
	if err == nil {
		return false
	}
	for _, issue := range err.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeDefinition trims whitespace, lowercases type tags and validates
// the structure of a definition.
func NormalizeDefinition(def Definition) (Definition, error) {
	collector := &issueCollector{}
	if def.Version == 0 {
		collector.add("version", "is required")
	} else if def.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", def.Version))
	}
	def.ID = strings.TrimSpace(def.ID)
	def.Title = strings.TrimSpace(def.Title)
	if len(def.Fragments) == 0 {
		collector.add("fragments", "must include at least one entry")
	}

	fragments := make([]FragmentDefinition, len(def.Fragments))
	for i, fragment := range def.Fragments {
		prefix := fmt.Sprintf("fragments[%d]", i)
		if len(fragment.Questions) == 0 {
			collector.add(prefix+".questions", "must include at least one entry")
		}
		questions := make([]QuestionDefinition, len(fragment.Questions))
		for j, question := range fragment.Questions {
			questions[j] = normalizeQuestion(collector, fmt.Sprintf("%s.questions[%d]", prefix, j), question)
		}
		fragments[i] = FragmentDefinition{Questions: questions}
	}
	def.Fragments = fragments
	return def, collector.result()
}

func normalizeQuestion(collector *issueCollector, prefix string, question QuestionDefinition) QuestionDefinition {
	question.Type = strings.ToLower(strings.TrimSpace(question.Type))
	question.Title = strings.TrimSpace(question.Title)
	question.ConsentText = strings.TrimSpace(question.ConsentText)
	question.Prompt = strings.TrimSpace(question.Prompt)

	switch Kind(question.Type) {
	case KindConsent:
		if question.ConsentText == "" {
			collector.add(prefix+".consent_text", "is required")
		}
	case KindText:
		if question.Title == "" {
			collector.add(prefix+".title", "is required")
		}
	case "":
		collector.add(prefix+".type", "is required")
	default:
		if question.Title == "" {
			collector.add(prefix+".title", "is required")
		}
	}
	return question
}

// Build validates a definition and constructs the survey it describes.
func Build(def Definition) (*Survey, error) {
	normalized, err := NormalizeDefinition(def)
	if err != nil {
		return nil, err
	}
	s := &Survey{
		ID:        normalized.ID,
		Title:     normalized.Title,
		Fragments: make([]*Fragment, 0, len(normalized.Fragments)),
	}
	for i, fragmentDef := range normalized.Fragments {
		fragment := &Fragment{index: i, questions: make([]Question, 0, len(fragmentDef.Questions))}
		for j, questionDef := range fragmentDef.Questions {
			fragment.questions = append(fragment.questions, newQuestion(Order{Fragment: i, Question: j}, questionDef))
		}
		s.Fragments = append(s.Fragments, fragment)
	}
	return s, nil
}

// newQuestion constructs the variant for a normalized record.
func newQuestion(order Order, def QuestionDefinition) Question {
	switch Kind(def.Type) {
	case KindConsent:
		title := def.Title
		if title == "" {
			title = DefaultConsentTitle
		}
		prompt := def.Prompt
		if prompt == "" {
			prompt = DefaultConsentPrompt
		}
		return &Consent{
			base:   base{order: order, title: title, required: def.Required},
			text:   def.ConsentText,
			prompt: prompt,
		}
	case KindText:
		return &Text{base: base{order: order, title: def.Title, required: def.Required}}
	default:
		return &Unsupported{
			base:     base{order: order, title: def.Title},
			typeName: def.Type,
			extra:    def.Extra,
		}
	}
}
