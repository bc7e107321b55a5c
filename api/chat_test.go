package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/prompt"
)

type echoInvoker struct{}

func (echoInvoker) Invoke(_ context.Context, _ string, p prompt.Prompt) (string, error) {
	return "echo: " + p.Instruction, nil
}

func newConciergeServer() *Server {
	chat := gateway.NewChat(echoInvoker{}, "googleai/gemini-2.5-flash", "demo_user", nil)
	return NewConciergeServer(chat, "googleai/gemini-2.5-flash", nil)
}

func TestConciergeChatTurn(t *testing.T) {
	srv := newConciergeServer()

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"message":"hello","user_id":"alice"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp gateway.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "echo: hello", resp.Reply)
	assert.Equal(t, "alice", resp.UserID)
	assert.Equal(t, "googleai/gemini-2.5-flash", resp.Model)
}

func TestConciergeStatus(t *testing.T) {
	srv := newConciergeServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "googleai/gemini-2.5-flash", status["model"])
}

func TestConciergeBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `hello`},
		{"no message", `{"user_id":"alice"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newConciergeServer()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestConciergeUnknownPathIs404(t *testing.T) {
	srv := newConciergeServer()

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
