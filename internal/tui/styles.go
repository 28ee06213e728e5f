package tui

import (
	"github.com/charmbracelet/lipgloss"

	"geminichat/internal/widget"
)

type styles struct {
	title    lipgloss.Style
	user     lipgloss.Style
	bot      lipgloss.Style
	errorMsg lipgloss.Style
	meta     lipgloss.Style
	welcome  lipgloss.Style
	subtitle lipgloss.Style
	help     lipgloss.Style
	frame    lipgloss.Style
}

var statusColors = map[widget.Status]lipgloss.Color{
	widget.StatusOnline: lipgloss.Color("#19c37d"),
	widget.StatusTyping: lipgloss.Color("#f5a623"),
	widget.StatusError:  lipgloss.Color("#ff6b6b"),
}

func stylesFor(theme widget.Theme) styles {
	fg, muted, accent, border := lipgloss.Color("#ececf1"), lipgloss.Color("#8e8ea0"), lipgloss.Color("#10a37f"), lipgloss.Color("#444654")
	if theme == widget.ThemeLight {
		fg, muted, accent, border = lipgloss.Color("#202123"), lipgloss.Color("#6e6e80"), lipgloss.Color("#0b7a5f"), lipgloss.Color("#d9d9e3")
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		user:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		bot:      lipgloss.NewStyle().Foreground(fg),
		errorMsg: lipgloss.NewStyle().Foreground(statusColors[widget.StatusError]),
		meta:     lipgloss.NewStyle().Foreground(muted).Faint(true),
		welcome:  lipgloss.NewStyle().Foreground(fg).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(muted),
		help:     lipgloss.NewStyle().Foreground(muted),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
	}
}

func statusLight(status widget.Status) string {
	return lipgloss.NewStyle().Foreground(statusColors[status]).Render("●") + " " + string(status)
}
