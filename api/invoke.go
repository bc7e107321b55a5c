package api

import (
	"io"
	"net/http"

	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/log"
)

// maxRequestBody bounds the invocation payload size.
const maxRequestBody = 1 << 20 // 1 MiB

// SessionHeader carries the caller's conversation identifier. Requests
// without it share the store's default session.
const SessionHeader = "X-Session-ID"

// InvokeHandler serves the task-invocation endpoint.
type InvokeHandler struct {
	gw     *gateway.Gateway
	logger log.Logger
}

// NewInvokeHandler creates the invocation handler for one gateway.
func NewInvokeHandler(gw *gateway.Gateway, logger log.Logger) *InvokeHandler {
	return &InvokeHandler{gw: gw, logger: logger}
}

// RegisterRoutes registers invocation routes on the given mux.
func (h *InvokeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /invoke", h.invoke)
}

// invoke runs the gateway pipeline. The response is always HTTP 200 with a
// JSON body: the artifact or an error envelope. Transport-level errors
// (unreadable body) are the only non-200 path.
func (h *InvokeHandler) invoke(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		h.logger.Error("reading request body", "error", err)
		writeError(w, http.StatusBadRequest, "unreadable_body", "could not read request body")
		return
	}

	out := h.gw.Handle(r.Context(), r.Header.Get(SessionHeader), body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
