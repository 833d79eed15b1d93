package take

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header         lipgloss.Style
	focusedTitle   lipgloss.Style
	title          lipgloss.Style
	body           lipgloss.Style
	button         lipgloss.Style
	buttonDisabled lipgloss.Style
	buttonDone     lipgloss.Style
	muted          lipgloss.Style
	locked         lipgloss.Style
	unlocked       lipgloss.Style
	status         lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			header:         plain.Bold(true),
			focusedTitle:   plain.Bold(true),
			title:          plain,
			body:           plain,
			button:         plain,
			buttonDisabled: plain,
			buttonDone:     plain,
			muted:          plain,
			locked:         plain,
			unlocked:       plain,
			status:         plain,
		}
	}
	return styles{
		header:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		focusedTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}),
		title:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		body:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		button:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")).Padding(0, 1),
		buttonDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 1),
		buttonDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1),
		muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		locked:         lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		unlocked:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		status:         lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}
