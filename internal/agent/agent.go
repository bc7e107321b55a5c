// Package agent declares the serving metadata for each task agent: its task
// kind and the discovery card published at the well-known path.
package agent

import "github.com/planora/planora/internal/schema"

// WellKnownPath is where an agent publishes its discovery card.
const WellKnownPath = "/.well-known/agent.json"

// Card is the public discovery document describing an agent. Field names
// follow the agent-card wire format consumed by orchestrator frontends.
type Card struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Capabilities       Capabilities `json:"capabilities"`
	Skills             []Skill      `json:"skills"`
	SupportsExtended   bool         `json:"supportsAuthenticatedExtendedCard"`
}

// Capabilities advertises transport features.
type Capabilities struct {
	Streaming bool `json:"streaming"`
}

// Skill describes one invocable capability, with literal example request
// documents that double as the caller-facing contract.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// Descriptor ties a task kind to its serving identity.
type Descriptor struct {
	Name string // short identifier used in config keys, CLI, and logs
	Kind schema.Kind
	Card Card
}
