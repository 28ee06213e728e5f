package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geminichat/internal/widget"
)

const welcomeSubtitle = "Ask me anything and I'll do my best to help!"

func renderHistory(entries []widget.Entry, opts widget.Options, st styles, typing string, width int) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		switch e.Kind {
		case widget.EntryWelcome:
			b.WriteString(st.welcome.Render("👋 " + e.Message.Text))
			b.WriteString("\n")
			b.WriteString(st.subtitle.Render(welcomeSubtitle))
		case widget.EntryTyping:
			b.WriteString(st.bot.Render("Bot"))
			b.WriteString("\n")
			b.WriteString(typing)
		case widget.EntryMessage:
			b.WriteString(renderMessage(e.Message, opts, st, width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderMessage(m widget.Message, opts widget.Options, st styles, width int) string {
	label, body := st.bot.Render("Bot"), st.bot
	if m.Sender == widget.SenderUser {
		label = st.user.Render("You")
	}
	if m.IsError {
		body = st.errorMsg
	}
	if width > 0 {
		body = body.Width(width)
	}

	parts := []string{label, body.Render(m.Text)}
	if opts.ShowTimestamps {
		parts = append(parts, st.meta.Render(widget.FormatTime(m.Timestamp)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
