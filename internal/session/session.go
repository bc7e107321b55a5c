// Package session is the process-wide store of conversation state, keyed by
// an opaque session identifier supplied by the caller.
//
// Each session holds an ordered sequence of role-tagged turns plus a metadata
// mapping. Per-key operations are linearizable: a session never observes an
// interleaved half-written turn. Operations on different keys do not contend
// beyond the brief map lookup.
//
// The store is bounded two ways: a least-recently-used cap on the number of
// live sessions, and a background sweep that drops sessions idle longer than
// the configured timeout. The timeout is also recorded in each session's
// metadata under "session_timeout_seconds" so callers can observe it.
package session

import (
	"sync"
	"time"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultKey is the fallback session key used when a caller supplies no
// conversation identifier.
const DefaultKey = "default_session"

// MetaIdleTimeout is the metadata key holding the configured idle timeout in
// seconds.
const MetaIdleTimeout = "session_timeout_seconds"

// Turn is one role-tagged message in a session's history.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"content"`
}

// Session is a single conversation's state. All access goes through Store
// operations; callers never hold a Session across requests.
type Session struct {
	mu         sync.Mutex
	key        string
	turns      []Turn
	meta       map[string]any
	lastActive time.Time
}

// Key returns the opaque identifier this session was created under.
func (s *Session) Key() string { return s.key }
