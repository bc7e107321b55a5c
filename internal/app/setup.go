package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/planora/planora/internal/agent"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/gateway"
	"github.com/planora/planora/internal/invoke"
	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/schema"
	"github.com/planora/planora/internal/session"
)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close() to release.
func Setup(ctx context.Context, cfg *config.Config) (_ *App, retErr error) {
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.Log.Level), JSON: cfg.Log.JSON})
	a := &App{Config: cfg, Logger: logger}

	// On error, clean up everything already initialized.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	if cfg.Otel.Enabled {
		a.otelCleanup = provideOtelShutdown(ctx, cfg, logger)
	}

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	registry, err := schema.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("compiling schema registry: %w", err)
	}
	a.Registry = registry

	a.Sessions = session.New(session.Config{
		MaxSessions: cfg.Session.MaxSessions,
		IdleTimeout: cfg.Session.Timeout(),
		SweepEvery:  cfg.Session.SweepEvery(),
		Logger:      logger,
	})

	backend := invoke.NewGenkitBackend(g, logger)
	retry := invoke.RetryConfig{
		MaxRetries:      cfg.Retry.MaxRetries,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}

	a.Agents = []agent.Descriptor{
		agent.Weather(cfg.Weather.PublicURL),
		agent.Activities(cfg.Activities.PublicURL),
		agent.Planner(cfg.Planner.PublicURL),
	}
	a.Gateways = make(map[schema.Kind]*gateway.Gateway, len(a.Agents))
	for _, desc := range a.Agents {
		invoker := invoke.New(backend, a.Sessions, invoke.Config{
			Model:             cfg.FullModelName(),
			Retry:             retry,
			RequestsPerSecond: cfg.Rate.RequestsPerSecond,
			Burst:             cfg.Rate.Burst,
			Logger:            logger.With("agent", desc.Name),
		})
		a.Gateways[desc.Kind] = gateway.New(desc.Kind, registry, invoker, logger.With("agent", desc.Name))
	}

	conciergeInvoker := invoke.New(backend, a.Sessions, invoke.Config{
		Model:             cfg.ConciergeModelName(),
		Retry:             retry,
		RequestsPerSecond: cfg.Rate.RequestsPerSecond,
		Burst:             cfg.Rate.Burst,
		Logger:            logger.With("agent", "concierge"),
	})
	a.Concierge = gateway.NewChat(conciergeInvoker, cfg.ConciergeModelName(),
		cfg.Concierge.DefaultUser, logger.With("agent", "concierge"))

	return a, nil
}

// provideGenkit initializes Genkit with the configured model provider.
// Supports gemini (default), ollama, and openai.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery).
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		logger.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		logger.Info("initialized Genkit with openai provider", "model", cfg.ModelName)

	default: // gemini
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		logger.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	}

	return g, nil
}

// provideOtelShutdown registers an OTLP HTTP span exporter with Genkit's
// TracerProvider. Must run before provideGenkit so the provider is ready.
func provideOtelShutdown(ctx context.Context, cfg *config.Config, logger log.Logger) func() {
	endpoint := cfg.Otel.Endpoint
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	// Set OTEL env vars for Genkit's TracerProvider to pick up.
	// os.Setenv is not concurrent-safe, but Setup runs once before any
	// goroutines are spawned.
	if cfg.Otel.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	}
	if cfg.Otel.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.Otel.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("creating trace exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("trace export enabled",
		"endpoint", endpoint,
		"service", cfg.Otel.ServiceName,
		"environment", cfg.Otel.Environment,
	)

	shutdown := tracing.TracerProvider().Shutdown
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down tracer provider", "error", err)
		}
	}
}
