package survey

import "fmt"

// Kind identifies a question variant.
type Kind string

const (
	// KindConsent is a consent form that must be read and agreed to.
	KindConsent Kind = "consent"
	// KindText is a single-line free-text field.
	KindText Kind = "text"
	// KindUnsupported is a placeholder for element types this client cannot present.
	KindUnsupported Kind = "unsupported"
)

// Order locates a question within a survey. Both indexes are zero-based.
type Order struct {
	Fragment int `json:"fragment" yaml:"fragment" bson:"fragment"`
	Question int `json:"question" yaml:"question" bson:"question"`
}

// Less reports whether o comes before other in survey order.
func (o Order) Less(other Order) bool {
	if o.Fragment != other.Fragment {
		return o.Fragment < other.Fragment
	}
	return o.Question < other.Question
}

// Label returns the one-based "page.question" number shown next to titles.
func (o Order) Label() string {
	return fmt.Sprintf("%d.%d", o.Fragment+1, o.Question+1)
}

// Question is one survey element. The set of implementations is closed:
// *Consent, *Text and *Unsupported.
type Question interface {
	Order() Order
	Kind() Kind
	Title() string
	Required() bool
	// Completed reports whether the question currently satisfies its
	// completion condition.
	Completed() bool
	// Response returns the serializable answer payload.
	Response() Response
	question()
}

// Response is the upload payload for one question.
type Response struct {
	Fragment  int    `json:"fragment" yaml:"fragment" bson:"fragment"`
	Question  int    `json:"question" yaml:"question" bson:"question"`
	Kind      Kind   `json:"kind" yaml:"kind" bson:"kind"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
	Title     string `json:"title" yaml:"title" bson:"title"`
	Required  bool   `json:"required" yaml:"required" bson:"required"`
	Completed bool   `json:"completed" yaml:"completed" bson:"completed"`
	Value     any    `json:"value,omitempty" yaml:"value,omitempty" bson:"value,omitempty"`
}

// base holds the fields every variant shares.
type base struct {
	order    Order
	title    string
	required bool
}

func (b *base) Order() Order   { return b.order }
func (b *base) Title() string  { return b.title }
func (b *base) Required() bool { return b.required }
func (b *base) question()      {}

func (b *base) response(kind Kind, completed bool, value any) Response {
	return Response{
		Fragment:  b.order.Fragment,
		Question:  b.order.Question,
		Kind:      kind,
		Title:     b.title,
		Required:  b.required,
		Completed: completed,
		Value:     value,
	}
}

// Fragment is one page of a survey. Its question set is fixed once built;
// only the questions' completion state changes.
type Fragment struct {
	index     int
	questions []Question
}

// Index returns the fragment position within the survey.
func (f *Fragment) Index() int { return f.index }

// Len returns the number of questions on the fragment.
func (f *Fragment) Len() int { return len(f.questions) }

// Question returns the question at row i.
func (f *Fragment) Question(i int) Question { return f.questions[i] }

// Questions returns a copy of the ordered question list.
func (f *Fragment) Questions() []Question {
	out := make([]Question, len(f.questions))
	copy(out, f.questions)
	return out
}

// Responses collects the response payload of every question in order.
func (f *Fragment) Responses() []Response {
	out := make([]Response, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, q.Response())
	}
	return out
}

// Survey is a built survey: an ordered list of fragments.
type Survey struct {
	ID        string
	Title     string
	Fragments []*Fragment
}

// Len returns the number of fragments.
func (s *Survey) Len() int { return len(s.Fragments) }
