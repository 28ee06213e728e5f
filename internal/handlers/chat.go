package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"geminichat/internal/models"
	"geminichat/internal/services"
)

type chatService interface {
	Ask(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	chatService chatService
}

func NewChatHandler(chatService chatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

const (
	replyNoMessage    = "No message provided."
	replyTooLarge     = "Message too large."
	replyNoCandidates = "No response generated from AI."

	maxChatBodyBytes = 64 << 10
)

// Chat relays one message upstream. Every outcome is a ChatReply; only
// the status code tells success from failure.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req models.ChatRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warn().Int64("limit", tooLarge.Limit).Msg("Rejected oversized chat request")
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ChatReply{Reply: replyTooLarge})
		return
	}
	if err != nil || strings.TrimSpace(req.Message) == "" {
		logger.Warn().Err(err).Msg("Rejected chat request without message")
		writeJSON(w, http.StatusBadRequest, models.ChatReply{Reply: replyNoMessage})
		return
	}

	reply, err := h.chatService.Ask(r.Context(), req.Message)
	if err != nil {
		handleChatError(w, logger, err)
		return
	}

	logger.Debug().Int("reply_len", len(reply)).Msg("Generated reply")
	writeJSON(w, http.StatusOK, models.ChatReply{Reply: reply})
}

func handleChatError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var (
		cfgErr      *services.ConfigError
		upstreamErr *services.UpstreamError
		noCandErr   *services.NoCandidatesError
	)

	var reply string
	switch {
	case errors.As(err, &cfgErr):
		logger.Error().Msg("No Gemini API key found")
		reply = cfgErr.Message
	case errors.As(err, &upstreamErr):
		logger.Error().Int("upstream_status", upstreamErr.StatusCode).Err(err).Msg("Gemini API error")
		msg := upstreamErr.Message
		if msg == "" {
			msg = "Unknown error"
		}
		reply = "API error: " + msg
	case errors.As(err, &noCandErr):
		logger.Error().Msg("No candidates in Gemini response")
		reply = replyNoCandidates
	default:
		logger.Error().Err(err).Msg("Gemini request failed")
		reply = "Error connecting to Gemini API: " + err.Error()
	}

	writeJSON(w, http.StatusInternalServerError, models.ChatReply{Reply: reply})
}
