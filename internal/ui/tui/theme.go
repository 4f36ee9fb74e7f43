package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Headline lipgloss.Style
	Strap    lipgloss.Style
	Age      lipgloss.Style
	Thumb    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Help     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		Headline: lipgloss.NewStyle().Bold(true),
		Strap:    lipgloss.NewStyle(),
		Age:      lipgloss.NewStyle().Faint(true),
		Thumb: lipgloss.NewStyle().
			Width(thumbWidth).
			Height(thumbHeight).
			Align(lipgloss.Center, lipgloss.Center).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Selected: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("63")).
			PaddingLeft(1),
		Normal: lipgloss.NewStyle().PaddingLeft(2),
		Help:   lipgloss.NewStyle().Faint(true),
	}
}
