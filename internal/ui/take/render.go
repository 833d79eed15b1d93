package take

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"surveylex/internal/page"
	"surveylex/internal/session"
)

const (
	headerLines = 2
	footerLines = 3
)

// View renders the survey page.
func (m Model) View() string {
	if m.quitting && !m.uploading {
		return m.styles.status.Render(m.status) + "\n"
	}
	footer := m.styles.status.Render(m.status)
	if m.uploading {
		footer = strings.TrimSpace(footer + " " + m.styles.muted.Render("saving..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		footer,
		m.help.View(keys),
	)
}

func (m Model) renderHeader() string {
	title := m.run.Survey().Title
	if title == "" {
		title = m.run.Survey().ID
	}
	current := m.run.Current()
	progress := fmt.Sprintf("Page %d of %d", m.run.CurrentIndex()+1, m.run.Len())
	state := ""
	switch {
	case m.run.Status() != session.StatusActive:
		state = m.styles.muted.Render(string(m.run.Status()))
	case !current.Loaded():
	case current.Unlocked():
		state = m.styles.unlocked.Render("ready to continue")
	default:
		state = m.styles.locked.Render("required questions remaining")
	}
	return m.styles.header.Render(title) + "\n" + m.styles.muted.Render(progress) + "  " + state
}

// layout renders the current page into the viewport and applies the
// latest scroll request of the page.
func (m *Model) layout() {
	m.viewport.Width = max(m.width, 20)
	m.viewport.Height = max(m.height-headerLines-footerLines, 3)

	current := m.run.Current()
	if !current.Loaded() {
		m.rowLines = nil
		m.viewport.SetContent(m.styles.muted.Render("Loading content..."))
		return
	}

	var b strings.Builder
	m.rowLines = make([]int, 0, current.Len())
	heights := make([]int, 0, current.Len())
	line := 0
	for i, presenter := range current.Presenters() {
		if i > 0 {
			b.WriteString("\n\n")
			line++
		}
		block := m.renderRow(presenter)
		m.rowLines = append(m.rowLines, line)
		height := lipgloss.Height(block)
		heights = append(heights, height)
		line += height
		b.WriteString(block)
	}
	m.viewport.SetContent(b.String())

	target := current.ScrollTarget()
	if target.Row == page.NoFocus || target.Row >= len(m.rowLines) || m.scrolled[current.Index()] == target.Seq {
		return
	}
	m.scrolled[current.Index()] = target.Seq
	offset := m.rowLines[target.Row]
	if target.Position == page.ScrollMiddle && heights[target.Row] <= m.viewport.Height {
		offset = offset + heights[target.Row]/2 - m.viewport.Height/2
	}
	m.viewport.SetYOffset(max(offset, 0))
}

func (m Model) renderRow(presenter page.Presenter) string {
	q := presenter.Question()
	marker := "  "
	titleStyle := m.styles.title
	if presenter.Focused() {
		marker = "› "
		titleStyle = m.styles.focusedTitle
	}
	wrap := lipgloss.NewStyle().Width(max(m.width-4, 16))

	switch p := presenter.(type) {
	case *page.ConsentPresenter:
		// Consent rows always look active.
		marker, titleStyle = "  ", m.styles.focusedTitle
		consent := p.Consent()
		box := "[ ]"
		if consent.Checked() {
			box = "[x]"
		}
		button := m.styles.buttonDisabled.Render(p.ButtonLabel())
		switch {
		case p.Locked():
			button = m.styles.buttonDone.Render(p.ButtonLabel())
		case p.CanAgree():
			button = m.styles.button.Render(p.ButtonLabel())
		}
		return strings.Join([]string{
			marker + titleStyle.Render(q.Order().Label()+" "+q.Title()),
			indent(wrap.Render(m.styles.body.Render(consent.Text()))),
			indent(box + " " + consent.Prompt()),
			indent(button),
		}, "\n")
	case *page.TextPresenter:
		field := ""
		if input := m.inputs[q.Order()]; input != nil {
			field = input.View()
		}
		return marker + titleStyle.Render(q.Order().Label()+" "+q.Title()) + "\n" + indent(field)
	default:
		return marker + m.styles.muted.Render(q.Order().Label()+" "+fmt.Sprint(q))
	}
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
