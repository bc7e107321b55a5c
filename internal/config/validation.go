package config

import (
	"fmt"
	"os"
	"slices"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	validProviders := []string{ProviderGemini, ProviderGoogleAI, ProviderOllama, ProviderOpenAI}
	if !slices.Contains(validProviders, c.Provider) {
		return fmt.Errorf("%w: %q is not one of %v", ErrInvalidProvider, c.Provider, validProviders)
	}

	// API key presence depends on the selected provider; Ollama is local and
	// needs none.
	switch c.Provider {
	case ProviderGemini, ProviderGoogleAI:
		if os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
				"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
				ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY environment variable is required", ErrMissingAPIKey)
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("%w: ollama_host cannot be empty", ErrInvalidOllamaHost)
		}
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	ports := map[string]int{
		"weather":    c.Weather.Port,
		"activities": c.Activities.Port,
		"planner":    c.Planner.Port,
		"concierge":  c.Concierge.Port,
	}
	seen := make(map[int]string, len(ports))
	for name, port := range ports {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s.port must be between 1 and 65535, got %d", ErrInvalidPort, name, port)
		}
		if other, dup := seen[port]; dup {
			return fmt.Errorf("%w: %s and %s both listen on %d", ErrInvalidPort, other, name, port)
		}
		seen[port] = name
	}

	if c.Session.TimeoutSeconds < 1 {
		return fmt.Errorf("%w: timeout_seconds must be positive, got %d", ErrInvalidSession, c.Session.TimeoutSeconds)
	}
	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("%w: max_sessions must be positive, got %d", ErrInvalidSession, c.Session.MaxSessions)
	}
	if c.Session.SweepSeconds < 1 {
		return fmt.Errorf("%w: sweep_seconds must be positive, got %d", ErrInvalidSession, c.Session.SweepSeconds)
	}

	if c.Retry.MaxRetries < 0 || c.Retry.MaxRetries > 10 {
		return fmt.Errorf("%w: max_retries must be between 0 and 10, got %d", ErrInvalidRetry, c.Retry.MaxRetries)
	}
	if c.Retry.InitialInterval <= 0 || c.Retry.MaxInterval < c.Retry.InitialInterval {
		return fmt.Errorf("%w: intervals must satisfy 0 < initial_interval <= max_interval", ErrInvalidRetry)
	}

	return nil
}
