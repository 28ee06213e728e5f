package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 16, 9, 5, 0, 0, time.UTC)

func newTestSession(opts Options) *Session {
	opts.Clock = func() time.Time { return fixedNow }
	return NewSession(opts)
}

func countBySender(msgs []Message, sender Sender) int {
	n := 0
	for _, m := range msgs {
		if m.Sender == sender {
			n++
		}
	}
	return n
}

func hasTyping(entries []Entry) bool {
	for _, e := range entries {
		if e.Kind == EntryTyping {
			return true
		}
	}
	return false
}

func TestSession_InitialState(t *testing.T) {
	s := newTestSession(Options{})

	assert.Equal(t, StatusOnline, s.Status())
	assert.False(t, s.Pending())
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, EntryWelcome, entries[0].Kind)
	assert.Equal(t, DefaultWelcomeText, entries[0].Message.Text)
}

func TestSession_SubmitBlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		s := newTestSession(Options{})

		req, ok := s.Submit(context.Background(), text)

		assert.False(t, ok)
		assert.Nil(t, req)
		assert.Empty(t, s.Messages())
		assert.Equal(t, StatusOnline, s.Status())
		assert.False(t, s.CanSubmit(text))
	}
}

func TestSession_SubmitIsOptimistic(t *testing.T) {
	s := newTestSession(Options{})

	req, ok := s.Submit(context.Background(), "  Hello  ")
	require.True(t, ok)
	assert.Equal(t, "Hello", req.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderUser, msgs[0].Sender)
	assert.Equal(t, "Hello", msgs[0].Text)
	assert.Equal(t, fixedNow, msgs[0].Timestamp)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Equal(t, msgs[0].ID, req.ID, "request carries the user message ID")

	assert.True(t, s.Pending())
	assert.Equal(t, StatusTyping, s.Status())
	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, EntryMessage, entries[0].Kind)
	assert.Equal(t, EntryTyping, entries[1].Kind)
}

func TestSession_MessageIDsAreUnique(t *testing.T) {
	s := newTestSession(Options{})

	req, ok := s.Submit(context.Background(), "Hello")
	require.True(t, ok)
	require.True(t, s.Complete(req, Outcome{StatusCode: 200, Reply: "Hi"}))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestSession_SubmitWhilePendingIsNoop(t *testing.T) {
	s := newTestSession(Options{})
	_, ok := s.Submit(context.Background(), "first")
	require.True(t, ok)

	assert.False(t, s.CanSubmit("second"))
	req, ok := s.Submit(context.Background(), "second")
	assert.False(t, ok)
	assert.Nil(t, req)
	assert.Len(t, s.Messages(), 1)
}

func TestSession_CompleteOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		reply   string
		isError bool
		status  Status
	}{
		{"success", Outcome{StatusCode: 200, Reply: "Hi there"}, "Hi there", false, StatusOnline},
		{"success with empty reply", Outcome{StatusCode: 200}, "Sorry, I did not understand.", false, StatusOnline},
		{"server error with reply", Outcome{StatusCode: 500, Reply: "No response generated from AI."}, "Error: No response generated from AI.", true, StatusError},
		{"client error with reply", Outcome{StatusCode: 400, Reply: "No message provided."}, "Error: No message provided.", true, StatusError},
		{"server error without reply", Outcome{StatusCode: 502}, "Error: Server error", true, StatusError},
		{"transport failure", Outcome{Err: errors.New("connection refused")}, "Error connecting to server.", true, StatusError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(Options{})
			req, ok := s.Submit(context.Background(), "Hello")
			require.True(t, ok)

			require.True(t, s.Complete(req, tc.outcome))

			msgs := s.Messages()
			assert.Equal(t, 1, countBySender(msgs, SenderUser))
			assert.Equal(t, 1, countBySender(msgs, SenderBot))
			bot := msgs[len(msgs)-1]
			assert.Equal(t, tc.reply, bot.Text)
			assert.Equal(t, tc.isError, bot.IsError)
			assert.Equal(t, tc.status, s.Status())
			assert.False(t, s.Pending())
			assert.False(t, hasTyping(s.Entries()))
			assert.Error(t, req.Context().Err(), "request context released after completion")
		})
	}
}

func TestSession_CompleteTwiceAppendsOnce(t *testing.T) {
	s := newTestSession(Options{})
	req, _ := s.Submit(context.Background(), "Hello")

	assert.True(t, s.Complete(req, Outcome{StatusCode: 200, Reply: "one"}))
	assert.False(t, s.Complete(req, Outcome{StatusCode: 200, Reply: "two"}))
	assert.Len(t, s.Messages(), 2)
	assert.False(t, s.Complete(nil, Outcome{StatusCode: 200}))
}

func TestSession_StatusMachineReenters(t *testing.T) {
	s := newTestSession(Options{})

	req, _ := s.Submit(context.Background(), "a")
	s.Complete(req, Outcome{Err: errors.New("down")})
	assert.Equal(t, StatusError, s.Status())

	req, ok := s.Submit(context.Background(), "b")
	require.True(t, ok)
	assert.Equal(t, StatusTyping, s.Status())

	s.Complete(req, Outcome{StatusCode: 200, Reply: "ok"})
	assert.Equal(t, StatusOnline, s.Status())
	assert.Len(t, s.Messages(), 4)
}

func TestSession_ClearWhilePendingSuppressesLateReply(t *testing.T) {
	s := newTestSession(Options{})
	req, _ := s.Submit(context.Background(), "Hello")

	s.Clear()

	assert.ErrorIs(t, req.Context().Err(), context.Canceled)
	assert.False(t, s.Pending())
	assert.Equal(t, StatusOnline, s.Status())
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, EntryWelcome, entries[0].Kind)

	assert.False(t, s.Complete(req, Outcome{StatusCode: 200, Reply: "late"}))
	assert.Empty(t, s.Messages())

	// The input is usable again right away.
	_, ok := s.Submit(context.Background(), "again")
	assert.True(t, ok)
}

func TestSession_ClearKeepsOtherState(t *testing.T) {
	s := newTestSession(Options{ThemeToggle: true})
	req, _ := s.Submit(context.Background(), "Hello")
	s.Complete(req, Outcome{StatusCode: 500, Reply: "boom"})
	s.ToggleTheme()

	s.Clear()

	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, ThemeLight, s.Theme())
	require.Len(t, s.Entries(), 1)
	assert.Equal(t, EntryWelcome, s.Entries()[0].Kind)
}

func TestSession_Abort(t *testing.T) {
	s := newTestSession(Options{})
	assert.False(t, s.Abort(), "abort with nothing in flight")

	req, _ := s.Submit(context.Background(), "Hello")
	require.True(t, s.Abort())

	assert.ErrorIs(t, req.Context().Err(), context.Canceled)
	assert.False(t, s.Pending())
	assert.Equal(t, StatusError, s.Status())
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Error: Request cancelled.", msgs[1].Text)
	assert.True(t, msgs[1].IsError)

	assert.False(t, s.Complete(req, Outcome{Err: context.Canceled}))
	assert.Len(t, s.Messages(), 2)
}

func TestSession_RequestTimeout(t *testing.T) {
	s := newTestSession(Options{RequestTimeout: 5 * time.Second})
	req, _ := s.Submit(context.Background(), "Hello")

	_, ok := req.Context().Deadline()
	assert.True(t, ok)

	s = newTestSession(Options{})
	req, _ = s.Submit(context.Background(), "Hello")
	_, ok = req.Context().Deadline()
	assert.False(t, ok)
}

func TestSession_ToggleTheme(t *testing.T) {
	disabled := newTestSession(Options{})
	assert.Equal(t, ThemeDark, disabled.ToggleTheme())

	enabled := newTestSession(Options{ThemeToggle: true})
	assert.Equal(t, ThemeLight, enabled.ToggleTheme())
	assert.Equal(t, ThemeDark, enabled.ToggleTheme())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:05", FormatTime(fixedNow))
}
