// Package api provides the HTTP surface of the agents.
//
// Each task agent runs its own server exposing a single task-invocation
// endpoint plus discovery and health routes:
//
//	POST /invoke                   →  gateway pipeline (always 200, JSON body)
//	GET  /.well-known/agent.json   →  discovery card
//	GET  /health                   →  liveness probe
//
// The concierge runs a separate server with the flexible chat endpoint on
// its root path.
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - invoke.go: task-invocation endpoint
//   - card.go: discovery card endpoint
//   - chat.go: concierge endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/planora/planora/internal/agent"
	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/log"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response. Model
	// turns can take a while, so this is generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is one agent's HTTP server.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger
}

// NewAgentServer creates the server for a task agent: invocation, discovery
// card, and health routes.
func NewAgentServer(gw *gateway.Gateway, desc agent.Descriptor, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	mux := http.NewServeMux()

	NewInvokeHandler(gw, logger).RegisterRoutes(mux)
	NewCardHandler(desc).RegisterRoutes(mux)
	registerHealth(mux)

	return &Server{mux: mux, logger: logger}
}

// NewConciergeServer creates the server for the free-text concierge.
func NewConciergeServer(chat *gateway.Chat, model string, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	mux := http.NewServeMux()

	NewChatHandler(chat, model, logger).RegisterRoutes(mux)
	registerHealth(mux)

	return &Server{mux: mux, logger: logger}
}

func registerHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → request ID → logging → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware,
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
