package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/log"
)

// ChatHandler serves the concierge endpoints on the root path: POST for a
// chat turn, GET for a status document.
type ChatHandler struct {
	chat   *gateway.Chat
	model  string
	logger log.Logger
}

// NewChatHandler creates the concierge handler.
func NewChatHandler(chat *gateway.Chat, model string, logger log.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, model: model, logger: logger}
}

// RegisterRoutes registers concierge routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /{$}", h.turn)
	mux.HandleFunc("GET /{$}", h.status)
}

func (h *ChatHandler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"app":    "Planora Concierge",
		"model":  h.model,
	})
}

func (h *ChatHandler) turn(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable_body", "could not read request body")
		return
	}

	resp, err := h.chat.Handle(r.Context(), body)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, gateway.ErrMalformedChatBody):
		writeError(w, http.StatusBadRequest, "malformed_body", "Invalid JSON body.")
	case errors.Is(err, gateway.ErrNoMessage):
		writeError(w, http.StatusBadRequest, "no_message", "Could not extract a user message from request body.")
	default:
		h.logger.Error("chat turn failed", "error", err)
		writeError(w, http.StatusInternalServerError, "model_failure", "The model could not produce a reply.")
	}
}
