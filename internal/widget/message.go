package widget

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Status drives the connectivity light.
type Status string

const (
	StatusOnline Status = "online"
	StatusTyping Status = "typing"
	StatusError  Status = "error"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Message is immutable once appended to a session.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	Timestamp time.Time
	IsError   bool
}

type EntryKind int

const (
	EntryWelcome EntryKind = iota
	EntryMessage
	EntryTyping
)

// Entry is one visible row of the chat window.
type Entry struct {
	Kind    EntryKind
	Message Message
}

// FormatTime renders the HH:MM meta line shown under a message.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
