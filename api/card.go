package api

import (
	"net/http"

	"github.com/planora/planora/internal/agent"
)

// CardHandler serves the agent discovery card.
type CardHandler struct {
	desc agent.Descriptor
}

// NewCardHandler creates the discovery handler for one agent.
func NewCardHandler(desc agent.Descriptor) *CardHandler {
	return &CardHandler{desc: desc}
}

// RegisterRoutes registers the well-known card route on the given mux.
func (h *CardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+agent.WellKnownPath, h.card)
}

func (h *CardHandler) card(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.desc.Card)
}
