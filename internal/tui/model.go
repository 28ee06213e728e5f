// Package tui renders a widget.Session as a terminal chat window.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"geminichat/internal/widget"
)

const (
	headerHeight = 2
	footerHeight = 4
	placeholder  = "Type your message... (Enter to send)"
)

// replyMsg carries a finished request back into Update.
type replyMsg struct {
	req     *widget.Request
	outcome widget.Outcome
}

type Model struct {
	ctx       context.Context
	session   *widget.Session
	transport widget.Transport

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
}

func New(ctx context.Context, session *widget.Session, transport widget.Transport) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Letters belong to the input, so the history only scrolls on
	// arrows and paging keys.
	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}

	m := Model{
		ctx:       ctx,
		session:   session,
		transport: transport,
		input:     ti,
		viewport:  vp,
		spinner:   sp,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			cmd := m.submit()
			return m, cmd
		case tea.KeyEsc:
			if m.session.Abort() {
				log.Debug().Msg("Request aborted")
			}
			cmd := m.afterRequest()
			return m, cmd
		case tea.KeyCtrlL:
			m.session.Clear()
			cmd := m.afterRequest()
			return m, cmd
		case tea.KeyCtrlT:
			m.session.ToggleTheme()
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		m.input.Width = msg.Width - 8
		m.refresh()

	case replyMsg:
		if !m.session.Complete(msg.req, msg.outcome) {
			log.Debug().Str("message_id", msg.req.ID).Msg("Dropped stale reply")
			return m, nil
		}
		if msg.outcome.Err != nil {
			log.Warn().Err(msg.outcome.Err).Str("message_id", msg.req.ID).Msg("Chat request failed")
		}
		cmd := m.afterRequest()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.Pending() {
			m.refresh()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	req, ok := m.session.Submit(m.ctx, m.input.Value())
	if !ok {
		return nil
	}

	// The input stays blurred, and so ignores keys, until the reply lands.
	m.input.Reset()
	m.input.Blur()
	m.refresh()

	transport := m.transport
	return func() tea.Msg {
		return replyMsg{req: req, outcome: transport.Send(req.Context(), req.Text)}
	}
}

// afterRequest re-enables input once nothing is pending.
func (m *Model) afterRequest() tea.Cmd {
	m.refresh()
	if m.session.Pending() {
		return nil
	}
	return m.input.Focus()
}

func (m *Model) refresh() {
	st := stylesFor(m.session.Theme())
	typing := m.spinner.View() + " " + st.meta.Render("typing...")
	m.viewport.SetContent(renderHistory(m.session.Entries(), m.session.Options(), st, typing, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	st := stylesFor(m.session.Theme())

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		st.title.Render("Gemini Chat"), "  ", statusLight(m.session.Status()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		st.frame.Render(m.viewport.View()),
		m.input.View(),
		st.help.Render(m.helpLine()),
	)
}

// helpLine lists the active keys. "enter send" is shown only while the
// input holds something sendable.
func (m Model) helpLine() string {
	keys := make([]string, 0, 5)
	if m.session.CanSubmit(m.input.Value()) {
		keys = append(keys, "enter send")
	}
	keys = append(keys, "esc cancel", "ctrl+l clear", "ctrl+c quit")
	if m.session.Options().ThemeToggle {
		keys = append(keys, fmt.Sprintf("ctrl+t theme (%s)", m.session.Theme()))
	}
	return strings.Join(keys, " • ")
}
