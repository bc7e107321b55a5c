// Package app provides application initialization and dependency wiring.
//
// App is the container that owns the long-lived components: the Genkit
// instance, the session store, the schema registry, and one gateway per task
// agent plus the free-text concierge.
package app

import (
	"github.com/firebase/genkit/go/genkit"

	"github.com/planora/planora/internal/agent"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/schema"
	"github.com/planora/planora/internal/session"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	Sessions *session.Store
	Registry *schema.Registry

	// Agents holds the serving metadata in a fixed order matching Gateways.
	Agents    []agent.Descriptor
	Gateways  map[schema.Kind]*gateway.Gateway
	Concierge *gateway.Chat

	otelCleanup func()
}

// Gateway returns the pipeline for kind, or nil if none is registered.
func (a *App) Gateway(kind schema.Kind) *gateway.Gateway {
	return a.Gateways[kind]
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	return nil
}
