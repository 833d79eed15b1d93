package take

import (
	"fmt"
	"io"

	"surveylex/internal/survey"
)

// WriteOutline prints the survey structure for non-interactive terminals,
// one line per question with what it takes to unlock each page.
func WriteOutline(w io.Writer, s *survey.Survey) error {
	title := s.Title
	if title == "" {
		title = s.ID
	}
	if _, err := fmt.Fprintf(w, "%s (%d pages)\n", title, s.Len()); err != nil {
		return err
	}
	for _, fragment := range s.Fragments {
		required := 0
		for _, q := range fragment.Questions() {
			if q.Required() && !q.Completed() {
				required++
			}
		}
		if _, err := fmt.Fprintf(w, "\nPage %d: %d required to continue\n", fragment.Index()+1, required); err != nil {
			return err
		}
		for _, q := range fragment.Questions() {
			if _, err := fmt.Fprintf(w, "  %s %s\n", q.Order().Label(), describe(q)); err != nil {
				return err
			}
		}
	}
	return nil
}

func describe(q survey.Question) string {
	switch typed := q.(type) {
	case *survey.Consent:
		if typed.Required() {
			return fmt.Sprintf("[consent] %s (agreement required)", typed.Title())
		}
		return fmt.Sprintf("[consent] %s", typed.Title())
	case *survey.Text:
		return fmt.Sprintf("[text] %s (%s)", typed.Title(), typed.Placeholder())
	case *survey.Unsupported:
		return fmt.Sprintf("[%s] %s (not supported, skipped)", typed.TypeName(), typed.Title())
	default:
		return q.Title()
	}
}
