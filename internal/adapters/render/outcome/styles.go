package outcome

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	failure  lipgloss.Style
	notice   lipgloss.Style
	detail   lipgloss.Style
	key      lipgloss.Style
	total    lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	phaseTag lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		pending:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		total:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		phaseTag: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
