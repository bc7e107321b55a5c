package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/prompt"
)

// Chat errors surfaced to the transport layer, which maps them onto status
// codes.
var (
	ErrMalformedChatBody = errors.New("chat body is not a JSON object")
	ErrNoMessage         = errors.New("could not extract a user message from request body")
)

// ChatRequest is the tagged union of body shapes the concierge accepts.
// Frontends disagree on where the message and user identity live, so the
// union is explicit and the extraction order among its variants is fixed.
// Leaves that vary in type across callers are raw and probed as strings.
type ChatRequest struct {
	Message        string          `json:"message"`
	Messages       []ChatMessage   `json:"messages"`
	State          ChatState       `json:"state"`
	UserID         string          `json:"user_id"`
	ForwardedProps json.RawMessage `json:"forwardedProps"`
}

// ChatMessage is one entry of the rich messages variant.
type ChatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Parts   []ChatPart      `json:"parts"`
}

// ChatPart is a nested content fragment, either flat or wrapped in a root
// object.
type ChatPart struct {
	Text string `json:"text"`
	Root struct {
		Text string `json:"text"`
	} `json:"root"`
}

// ChatState is the state variant some frontends nest the message under.
type ChatState struct {
	Message string `json:"message"`
}

// ChatResponse is the concierge reply payload.
type ChatResponse struct {
	Reply  string `json:"reply"`
	UserID string `json:"user_id"`
	Model  string `json:"model"`
}

// Chat is the free-text concierge pipeline. Unlike Gateway it has no output
// schema; the model's reply is returned verbatim.
type Chat struct {
	invoker     Invoker
	model       string
	defaultUser string
	logger      log.Logger
}

// NewChat creates the concierge. defaultUser keys sessions for callers that
// carry no identity.
func NewChat(invoker Invoker, model, defaultUser string, logger log.Logger) *Chat {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Chat{invoker: invoker, model: model, defaultUser: defaultUser, logger: logger}
}

// Handle decodes one chat body, runs a model turn under the resolved user
// key, and returns the reply. Decode and extraction failures are returned as
// typed errors for the transport layer to map.
func (c *Chat) Handle(ctx context.Context, raw []byte) (ChatResponse, error) {
	var req ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ChatResponse{}, fmt.Errorf("%w: %v", ErrMalformedChatBody, err)
	}

	userID := c.resolveUser(req)
	text, ok := messageText(req)
	if !ok {
		return ChatResponse{}, ErrNoMessage
	}

	reply, err := c.invoker.Invoke(ctx, userID, prompt.Prompt{
		System:      prompt.ConciergePreamble,
		Instruction: text,
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat turn for %s: %w", userID, err)
	}

	c.logger.Info("chat turn served", "user", userID, "chars", len(reply))
	return ChatResponse{Reply: reply, UserID: userID, Model: c.model}, nil
}

// resolveUser picks the session key: explicit user_id, then the forwarded
// thread metadata under either field spelling, then the configured default.
func (c *Chat) resolveUser(req ChatRequest) string {
	if uid := strings.TrimSpace(req.UserID); uid != "" {
		return uid
	}

	var forwarded struct {
		ThreadMetadata struct {
			UserID      string `json:"user_id"`
			UserIDCamel string `json:"userId"`
		} `json:"threadMetadata"`
	}
	if len(req.ForwardedProps) > 0 && json.Unmarshal(req.ForwardedProps, &forwarded) == nil {
		if uid := strings.TrimSpace(forwarded.ThreadMetadata.UserID); uid != "" {
			return uid
		}
		if uid := strings.TrimSpace(forwarded.ThreadMetadata.UserIDCamel); uid != "" {
			return uid
		}
	}

	return c.defaultUser
}

// messageText extracts the user's message in fixed priority order: the flat
// message field, then the last user entry of the messages list (string
// content, then parts[0].text, then parts[0].root.text), then state.message.
func messageText(req ChatRequest) (string, bool) {
	if msg := strings.TrimSpace(req.Message); msg != "" {
		return msg, true
	}

	for i := len(req.Messages) - 1; i >= 0; i-- {
		m := req.Messages[i]
		if m.Role != "user" {
			continue
		}
		var content string
		if json.Unmarshal(m.Content, &content) == nil {
			if content = strings.TrimSpace(content); content != "" {
				return content, true
			}
		}
		if len(m.Parts) > 0 {
			p := m.Parts[0]
			if text := strings.TrimSpace(p.Text); text != "" {
				return text, true
			}
			if text := strings.TrimSpace(p.Root.Text); text != "" {
				return text, true
			}
		}
	}

	if msg := strings.TrimSpace(req.State.Message); msg != "" {
		return msg, true
	}

	return "", false
}
