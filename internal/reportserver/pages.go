package reportserver

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"surveylex/internal/store"
)

const pageStyle = `body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; }
th, td { padding: .3rem .8rem; border-bottom: 1px solid #ddd; text-align: left; }
.muted { color: #888; }`

// write renders static markup.
func write(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

// text renders an escaped text node.
func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w, templ.EscapeString(s))
	})
}

// element wraps children in a tag. attrs is trusted markup.
func element(tag, attrs string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, "<", tag, attrs, ">"); err != nil {
			return err
		}
		if err := templ.Join(children...).Render(ctx, w); err != nil {
			return err
		}
		return write(w, "</", tag, ">")
	})
}

func layout(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"/>`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"/><title>`,
			templ.EscapeString(title), `</title><style>`, pageStyle, `</style></head>`); err != nil {
			return err
		}
		if err := element("body", "", body...).Render(ctx, w); err != nil {
			return err
		}
		return write(w, "</html>\n")
	})
}

func headerRow(columns ...string) templ.Component {
	cells := make([]templ.Component, 0, len(columns))
	for _, column := range columns {
		cells = append(cells, element("th", "", text(column)))
	}
	return element("tr", "", cells...)
}

func cell(s string) templ.Component {
	return element("td", "", text(s))
}

func sessionLink(id string) templ.Component {
	href := templ.EscapeString("/sessions/" + id)
	return element("a", ` href="`+href+`"`, text(id))
}

func sessionRow(session store.SessionRecord) templ.Component {
	return element("tr", "",
		element("td", "", sessionLink(session.ID)),
		cell(session.SurveyID),
		cell(session.Status),
		cell(strconv.Itoa(session.Pages)),
		cell(session.UpdatedAt.Format(time.RFC3339)),
	)
}

func responseRow(response store.ResponseRecord) templ.Component {
	return element("tr", "",
		cell(fmt.Sprintf("%d.%d", response.Fragment+1, response.Question+1)),
		cell(response.Title),
		cell(response.Kind),
		cell(strconv.FormatBool(response.Required)),
		cell(strconv.FormatBool(response.Completed)),
		element("td", "", element("code", "", text(response.ValueJSON))),
	)
}

// IndexPage lists stored sessions.
func IndexPage(sessions []store.SessionRecord) templ.Component {
	heading := element("h1", "", text("Survey responses"))
	if len(sessions) == 0 {
		return layout("Survey responses", heading,
			element("p", ` class="muted"`, text("No sessions stored yet.")))
	}
	rows := []templ.Component{headerRow("Session", "Survey", "Status", "Pages", "Updated")}
	for _, session := range sessions {
		rows = append(rows, sessionRow(session))
	}
	return layout("Survey responses", heading, element("table", "", rows...))
}

// SessionPage shows every stored response of one session.
func SessionPage(session store.SessionRecord, responses []store.ResponseRecord) templ.Component {
	rows := []templ.Component{headerRow("#", "Question", "Kind", "Required", "Completed", "Value")}
	for _, response := range responses {
		rows = append(rows, responseRow(response))
	}
	return layout("Session "+session.ID,
		element("h1", "", text("Session "+session.ID)),
		element("p", "",
			text("Survey "), element("b", "", text(session.SurveyID)),
			text(", status "), element("b", "", text(session.Status))),
		element("table", "", rows...),
		element("p", "", element("a", ` href="/"`, text("All sessions"))),
	)
}
