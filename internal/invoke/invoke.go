// Package invoke drives a single model turn: record the user instruction in
// the session, replay the session history to the backend, and record the
// assistant's reply. Calls are guarded by a rate limiter, a circuit breaker,
// and exponential-backoff retry for transient provider errors.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/planora/planora/internal/log"
	"github.com/planora/planora/internal/prompt"
	"github.com/planora/planora/internal/session"
)

// ErrEmptyResponse is returned when the backend call succeeds but yields no
// text. Treated like any other invocation failure by callers.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Request is one generation call: a provider-qualified model name, a system
// instruction, and the full ordered turn history including the new user
// instruction as its last user turn.
type Request struct {
	Model   string
	System  string
	History []session.Turn
}

// Backend executes a single generation request against a model provider.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config configures an Invoker.
type Config struct {
	Model             string // provider-qualified, e.g. "googleai/gemini-2.5-flash"
	Retry             RetryConfig
	Circuit           CircuitConfig
	RequestsPerSecond float64 // 0 disables rate limiting
	Burst             int
	Logger            log.Logger // nil = nop
}

// Invoker owns the session bookkeeping and resilience policy around a
// Backend. One Invoker per agent; safe for concurrent use.
type Invoker struct {
	backend  Backend
	sessions *session.Store
	model    string
	retry    RetryConfig
	breaker  *CircuitBreaker
	limiter  *rate.Limiter
	logger   log.Logger
}

// New creates an Invoker around backend, recording history in sessions.
func New(backend Backend, sessions *session.Store, cfg Config) *Invoker {
	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Invoker{
		backend:  backend,
		sessions: sessions,
		model:    cfg.Model,
		retry:    cfg.Retry,
		breaker:  NewCircuitBreaker(cfg.Circuit),
		limiter:  limiter,
		logger:   cfg.Logger,
	}
}

// Invoke runs one model turn under sessionKey.
//
// The user instruction is appended to the session before the call, so the
// backend sees it as the last turn of the replayed history. The assistant
// turn is recorded only when the call produces non-empty text; a failed or
// empty invocation leaves the user turn in place and returns an error.
func (i *Invoker) Invoke(ctx context.Context, sessionKey string, p prompt.Prompt) (string, error) {
	i.sessions.Append(sessionKey, session.RoleUser, p.Instruction)

	req := Request{
		Model:   i.model,
		System:  p.System,
		History: i.sessions.Snapshot(sessionKey),
	}

	text, err := i.generateWithRetry(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	i.sessions.Append(sessionKey, session.RoleAssistant, text)
	return text, nil
}

// generateWithRetry executes req with exponential backoff. Each attempt is
// rate limited and gated by the circuit breaker; non-retryable errors and an
// open circuit fail immediately.
func (i *Invoker) generateWithRetry(ctx context.Context, req Request) (string, error) {
	var lastErr error
	delay := i.retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= i.retry.MaxRetries; attempt++ {
		if i.limiter != nil {
			if err := i.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}
		if err := i.breaker.Allow(); err != nil {
			i.logger.Warn("rejecting model call", "state", i.breaker.State().String())
			return "", err
		}

		text, err := i.backend.Generate(ctx, req)
		if err == nil {
			i.breaker.Success()
			i.logger.Debug("model call succeeded",
				"model", req.Model,
				"attempts", attempt+1,
				"elapsed", time.Since(start),
			)
			return text, nil
		}

		i.breaker.Failure()
		lastErr = err

		if !retryableError(err) {
			return "", fmt.Errorf("generate: %w", err)
		}
		if attempt == i.retry.MaxRetries {
			break
		}

		i.logger.Debug("retrying after transient error",
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("canceled during retry backoff: %w", ctx.Err())
		case <-time.After(delay):
			delay = min(delay*2, i.retry.MaxInterval)
		}
	}

	return "", fmt.Errorf("generate after %d retries (elapsed %v): %w",
		i.retry.MaxRetries, time.Since(start), lastErr)
}
