// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override, original deployment names)
//  2. Config file (~/.planora/config.yaml or ./config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors so callers can check categories with
// errors.Is().
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the selected provider's API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidProvider indicates the model provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidOllamaHost indicates the Ollama host is invalid.
	ErrInvalidOllamaHost = errors.New("invalid Ollama host")

	// ErrInvalidPort indicates a listen port is out of range or duplicated.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidSession indicates a session bound is out of range.
	ErrInvalidSession = errors.New("invalid session configuration")

	// ErrInvalidRetry indicates a retry bound is out of range.
	ErrInvalidRetry = errors.New("invalid retry configuration")
)

// Model provider identifiers used in Config.Provider.
const (
	ProviderGemini   = "gemini"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// AgentConfig is the serving surface of one task agent.
type AgentConfig struct {
	Port      int    `mapstructure:"port"`
	PublicURL string `mapstructure:"public_url"` // advertised in the discovery card, not used for behavior
}

// ConciergeConfig is the serving surface of the free-text concierge.
type ConciergeConfig struct {
	Port        int    `mapstructure:"port"`
	Model       string `mapstructure:"model"`        // unqualified model name, defaults to the task model
	DefaultUser string `mapstructure:"default_user"` // session key for callers without identity
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	MaxSessions    int `mapstructure:"max_sessions"`
	SweepSeconds   int `mapstructure:"sweep_seconds"`
}

// Timeout returns the idle timeout as a duration.
func (s SessionConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SweepEvery returns the sweep cadence as a duration.
func (s SessionConfig) SweepEvery() time.Duration {
	return time.Duration(s.SweepSeconds) * time.Second
}

// RetryConfig bounds retry of transient model failures.
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// RateConfig throttles outbound model calls.
type RateConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // 0 disables throttling
	Burst             int     `mapstructure:"burst"`
}

// OtelConfig configures OTLP trace export.
type OtelConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"` // host:port of the OTLP HTTP collector
	Environment string `mapstructure:"environment"`
	ServiceName string `mapstructure:"service_name"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `mapstructure:"json"`
}

// Config stores application configuration.
type Config struct {
	// Model provider and task-agent model
	Provider   string `mapstructure:"provider"`    // "gemini" (default), "ollama", "openai"
	ModelName  string `mapstructure:"model_name"`  // unqualified, e.g. "gemini-2.5-flash"
	OllamaHost string `mapstructure:"ollama_host"` // only used when provider is "ollama"

	Weather    AgentConfig     `mapstructure:"weather"`
	Activities AgentConfig     `mapstructure:"activities"`
	Planner    AgentConfig     `mapstructure:"planner"`
	Concierge  ConciergeConfig `mapstructure:"concierge"`

	Session SessionConfig `mapstructure:"session"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Rate    RateConfig    `mapstructure:"rate"`
	Otel    OtelConfig    `mapstructure:"otel"`
	Log     LogConfig     `mapstructure:"log"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".planora")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if cfg.Concierge.Model == "" {
		cfg.Concierge.Model = cfg.ModelName
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("ollama_host", "http://localhost:11434")

	// Agent ports match the original deployment layout.
	v.SetDefault("weather.port", 9005)
	v.SetDefault("activities.port", 9006)
	v.SetDefault("planner.port", 9007)
	v.SetDefault("concierge.port", 9000)
	v.SetDefault("concierge.default_user", "demo_user")

	v.SetDefault("session.timeout_seconds", 3600)
	v.SetDefault("session.max_sessions", 1024)
	v.SetDefault("session.sweep_seconds", 60)

	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.initial_interval", "500ms")
	v.SetDefault("retry.max_interval", "10s")

	v.SetDefault("rate.requests_per_second", 0)
	v.SetDefault("rate.burst", 1)

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4318")
	v.SetDefault("otel.environment", "dev")
	v.SetDefault("otel.service_name", "planora")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// bindEnvVariables binds the environment names the original deployment
// already uses, so existing .env files keep working unchanged.
func bindEnvVariables(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "PLANORA_PROVIDER")
	mustBind("model_name", "GEMINI_MODEL")
	mustBind("ollama_host", "PLANORA_OLLAMA_HOST")

	mustBind("weather.port", "WEATHER_PORT")
	mustBind("weather.public_url", "WEATHER_PUBLIC_URL")
	mustBind("activities.port", "ACTIVITIES_PORT")
	mustBind("activities.public_url", "ACTIVITIES_PUBLIC_URL")
	mustBind("planner.port", "WEEKEND_PLANNER_PORT")
	mustBind("planner.public_url", "WEEKEND_PLANNER_PUBLIC_URL")

	mustBind("concierge.port", "ORCHESTRATOR_PORT")
	mustBind("concierge.model", "ORCHESTRATOR_MODEL")
	mustBind("concierge.default_user", "ORCHESTRATOR_USER_ID")

	mustBind("session.timeout_seconds", "SESSION_TIMEOUT_SECONDS")

	mustBind("otel.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	// NOTE: GEMINI_API_KEY and OPENAI_API_KEY are read directly by the
	// Genkit plugins, not via Viper. Validate checks their presence based
	// on the selected provider.
}

// FullModelName returns the provider-qualified task-agent model name.
// Examples: "googleai/gemini-2.5-flash", "ollama/llama3.3", "openai/gpt-4o".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	return c.qualify(c.ModelName)
}

// ConciergeModelName returns the provider-qualified concierge model name.
func (c *Config) ConciergeModelName() string {
	if c.Concierge.Model == "" {
		return c.FullModelName()
	}
	return c.qualify(c.Concierge.Model)
}

func (c *Config) qualify(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	switch c.Provider {
	case ProviderOllama:
		return ProviderOllama + "/" + name
	case ProviderOpenAI:
		return ProviderOpenAI + "/" + name
	default:
		return ProviderGoogleAI + "/" + name
	}
}
