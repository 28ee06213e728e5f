package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"geminichat/internal/models"
)

// Transport delivers one message to the relay and reports what came back.
type Transport interface {
	Send(ctx context.Context, message string) Outcome
}

// HTTPTransport talks to the relay's POST /api/chat.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/chat",
		client:   client,
	}
}

func (t *HTTPTransport) Send(ctx context.Context, message string) Outcome {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return Outcome{Err: errors.Wrap(err, "encode chat request")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Err: errors.Wrap(err, "build chat request")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Outcome{Err: errors.Wrap(err, "send chat request")}
	}
	defer resp.Body.Close()

	// A body that is not a ChatReply counts as no response at all.
	var reply models.ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Outcome{Err: errors.Wrapf(err, "decode chat reply (status %d)", resp.StatusCode)}
	}
	return Outcome{StatusCode: resp.StatusCode, Reply: reply.Reply}
}

// Controller runs a full submit/send/complete cycle synchronously.
type Controller struct {
	Session   *Session
	Transport Transport
}

func NewController(session *Session, transport Transport) *Controller {
	return &Controller{Session: session, Transport: transport}
}

// Send returns false when the submission was a no-op.
func (c *Controller) Send(ctx context.Context, text string) bool {
	req, ok := c.Session.Submit(ctx, text)
	if !ok {
		return false
	}
	outcome := c.Transport.Send(req.Context(), req.Text)
	c.Session.Complete(req, outcome)
	return true
}
