package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/planora/planora/internal/log"
)

// Default bounds applied when Config leaves them zero.
const (
	DefaultMaxSessions = 1024
	DefaultIdleTimeout = time.Hour
	DefaultSweepEvery  = time.Minute
)

// Config configures a Store.
type Config struct {
	MaxSessions int           // LRU cap on live sessions (default DefaultMaxSessions)
	IdleTimeout time.Duration // idle sessions older than this are swept (default DefaultIdleTimeout)
	SweepEvery  time.Duration // sweep cadence (default DefaultSweepEvery)
	Logger      log.Logger    // nil = nop
}

// Store maps opaque session keys to conversation state.
//
// Store is safe for concurrent use. The store mutex guards the key map and
// recency order; each session's own mutex guards its turns, so appends on
// different keys do not serialize against each other.
type Store struct {
	mu    sync.Mutex
	byKey map[string]*list.Element
	order *list.List // front = most recently used

	maxSessions int
	idleTimeout time.Duration
	sweepEvery  time.Duration
	logger      log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Store. Call Close to stop the idle sweeper.
func New(cfg Config) *Store {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = DefaultSweepEvery
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}

	s := &Store{
		byKey:       make(map[string]*list.Element),
		order:       list.New(),
		maxSessions: cfg.MaxSessions,
		idleTimeout: cfg.IdleTimeout,
		sweepEvery:  cfg.SweepEvery,
		logger:      cfg.Logger,
		done:        make(chan struct{}),
	}
	go s.sweep()
	return s
}

// GetOrCreate returns the session for key, creating an empty one on first
// reference. Creation is the only side effect; repeated calls are idempotent.
// An unseen key may evict the least recently used session when the store is
// at capacity.
func (s *Store) GetOrCreate(key string) *Session {
	if key == "" {
		key = DefaultKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key)
}

func (s *Store) getOrCreateLocked(key string) *Session {
	if el, ok := s.byKey[key]; ok {
		s.order.MoveToFront(el)
		sess := el.Value.(*Session)
		sess.lastActive = time.Now()
		return sess
	}

	sess := &Session{
		key:        key,
		meta:       map[string]any{MetaIdleTimeout: int(s.idleTimeout.Seconds())},
		lastActive: time.Now(),
	}
	s.byKey[key] = s.order.PushFront(sess)
	s.logger.Debug("created session", "key", key, "live", s.order.Len())

	for s.order.Len() > s.maxSessions {
		oldest := s.order.Back()
		evicted := oldest.Value.(*Session)
		s.order.Remove(oldest)
		delete(s.byKey, evicted.key)
		s.logger.Debug("evicted session", "key", evicted.key, "reason", "lru")
	}

	return sess
}

// Append records a new turn under key, creating the session if needed.
func (s *Store) Append(key, role, text string) {
	sess := s.GetOrCreate(key)

	sess.mu.Lock()
	sess.turns = append(sess.turns, Turn{Role: role, Text: text})
	sess.mu.Unlock()
}

// Snapshot returns a copy of the ordered turn history for key, creating the
// session if needed.
func (s *Store) Snapshot(key string) []Turn {
	sess := s.GetOrCreate(key)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	turns := make([]Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Metadata returns a copy of the metadata mapping for key, creating the
// session if needed.
func (s *Store) Metadata(key string) map[string]any {
	sess := s.GetOrCreate(key)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	meta := make(map[string]any, len(sess.meta))
	for k, v := range sess.meta {
		meta[k] = v
	}
	return meta
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Close stops the idle sweeper. The store remains usable afterwards but is
// no longer bounded by the idle timeout.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// sweep drops sessions whose last activity predates the idle timeout,
// enforcing the timeout recorded in session metadata.
func (s *Store) sweep() {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweepOnce(time.Now())
		}
	}
}

func (s *Store) sweepOnce(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *list.Element
	for el := s.order.Back(); el != nil; el = next {
		next = el.Prev()
		sess := el.Value.(*Session)
		if now.Sub(sess.lastActive) <= s.idleTimeout {
			// Order is recency-sorted, nothing older remains.
			break
		}
		s.order.Remove(el)
		delete(s.byKey, sess.key)
		s.logger.Debug("evicted session", "key", sess.key, "reason", "idle")
	}
}
