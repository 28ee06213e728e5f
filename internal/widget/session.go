package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultWelcomeText = "Hello! How can I help you today?"

	fallbackReply       = "Sorry, I did not understand."
	errorPrefix         = "Error: "
	fallbackServerError = "Server error"
	connectivityError   = "Error connecting to server."
	cancelledReply      = "Request cancelled."
)

// Options switches the optional widget features.
type Options struct {
	ShowTimestamps bool
	ThemeToggle    bool
	WelcomeText    string
	// RequestTimeout bounds each request; zero means no client-side limit.
	RequestTimeout time.Duration
	Clock          func() time.Time
}

// Outcome is what the transport observed for one request. Err is set only
// when no usable response arrived.
type Outcome struct {
	StatusCode int
	Reply      string
	Err        error
}

func (o Outcome) Success() bool {
	return o.Err == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// Request is the handle for the single in-flight submission. ID is the ID
// of the user message that started it.
type Request struct {
	ID   string
	Text string

	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
}

func (r *Request) Context() context.Context { return r.ctx }

// Session holds the client-side chat state. All methods are safe for
// concurrent use.
type Session struct {
	mu         sync.Mutex
	opts       Options
	messages   []Message
	pending    *Request
	status     Status
	theme      Theme
	generation uint64
}

func NewSession(opts Options) *Session {
	if opts.WelcomeText == "" {
		opts.WelcomeText = DefaultWelcomeText
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Session{
		opts:   opts,
		status: StatusOnline,
		theme:  ThemeDark,
	}
}

func (s *Session) Options() Options {
	return s.opts
}

// CanSubmit reports whether the send control is enabled for text.
func (s *Session) CanSubmit(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending == nil && strings.TrimSpace(text) != ""
}

// Submit appends the user's message, shows the typing placeholder and
// returns the handle for the one request to issue. It is a no-op for blank
// text or while another request is pending.
func (s *Session) Submit(parent context.Context, text string) (*Request, bool) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" || s.pending != nil {
		return nil, false
	}

	msg := s.appendLocked(text, SenderUser, false)

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.opts.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(parent, s.opts.RequestTimeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	s.generation++
	s.pending = &Request{ID: msg.ID, Text: text, ctx: ctx, cancel: cancel, generation: s.generation}
	s.status = StatusTyping
	return s.pending, true
}

// Complete applies the outcome of req. It returns false when req is no
// longer current (cleared, aborted or already completed) and leaves the
// history untouched in that case.
func (s *Session) Complete(req *Request, outcome Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req == nil || s.pending != req || req.generation != s.generation {
		return false
	}
	req.cancel()
	s.pending = nil

	switch {
	case outcome.Err != nil:
		s.appendLocked(connectivityError, SenderBot, true)
		s.status = StatusError
	case outcome.Success():
		reply := outcome.Reply
		if reply == "" {
			reply = fallbackReply
		}
		s.appendLocked(reply, SenderBot, false)
		s.status = StatusOnline
	default:
		reply := outcome.Reply
		if reply == "" {
			reply = fallbackServerError
		}
		s.appendLocked(errorPrefix+reply, SenderBot, true)
		s.status = StatusError
	}
	return true
}

// Abort cancels the in-flight request and reports it as failed. A late
// response for it is suppressed.
func (s *Session) Abort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	s.dropPendingLocked()
	s.appendLocked(errorPrefix+cancelledReply, SenderBot, true)
	s.status = StatusError
	return true
}

// Clear resets the history to the welcome element. An in-flight request is
// cancelled and its reply will not land in the cleared history.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.dropPendingLocked()
		if s.status == StatusTyping {
			s.status = StatusOnline
		}
	}
	s.messages = nil
}

func (s *Session) dropPendingLocked() {
	s.pending.cancel()
	s.pending = nil
	s.generation++
}

// ToggleTheme flips the theme when the feature is enabled.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.ThemeToggle {
		if s.theme == ThemeDark {
			s.theme = ThemeLight
		} else {
			s.theme = ThemeDark
		}
	}
	return s.theme
}

func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Entries returns the visible rows: the welcome element when the history
// is empty, then the messages, then the typing placeholder if pending.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return []Entry{{Kind: EntryWelcome, Message: Message{Text: s.opts.WelcomeText, Sender: SenderBot}}}
	}

	entries := make([]Entry, 0, len(s.messages)+1)
	for _, m := range s.messages {
		entries = append(entries, Entry{Kind: EntryMessage, Message: m})
	}
	if s.pending != nil {
		entries = append(entries, Entry{Kind: EntryTyping})
	}
	return entries
}

func (s *Session) appendLocked(text string, sender Sender, isError bool) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.opts.Clock(),
		IsError:   isError,
	}
	s.messages = append(s.messages, msg)
	return msg
}
