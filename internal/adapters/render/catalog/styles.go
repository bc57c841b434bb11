package catalog

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	id       lipgloss.Style
	name     lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	question lipgloss.Style
	meta     lipgloss.Style
	answer   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(6).Align(lipgloss.Right),
		name:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		question: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		answer:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
