package drill

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	key      lipgloss.Style
	value    lipgloss.Style
	uid      lipgloss.Style
	attr     lipgloss.Style
	option   lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	quantity lipgloss.Style
	unit     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		uid:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		attr:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		option:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		quantity: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		unit:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
