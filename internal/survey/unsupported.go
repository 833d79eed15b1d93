package survey

import "fmt"

// Unsupported stands in for an element type this client cannot present.
// It is always complete and never required, so it never blocks a page.
type Unsupported struct {
	base
	typeName string
	extra    map[string]any
}

func (u *Unsupported) Kind() Kind       { return KindUnsupported }
func (u *Unsupported) TypeName() string { return u.typeName }
func (u *Unsupported) Completed() bool  { return true }

// Extra returns the record fields this client does not interpret.
func (u *Unsupported) Extra() map[string]any { return u.extra }

func (u *Unsupported) String() string {
	return fmt.Sprintf("Unsupported cell <%s>", u.title)
}

func (u *Unsupported) Response() Response {
	resp := u.response(KindUnsupported, true, nil)
	resp.Type = u.typeName
	return resp
}
