package session

import (
	"context"
	"sync"
	"time"

	"weather-agent/pkg/log"
)

// Store keeps per-session conversation history in memory, bounded to a
// fixed window of recent turns. The registry map is only locked for
// session lookup; each session carries its own mutex, so operations on
// distinct sessions never block each other while appends on the same
// session are linearized.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	window          int
	ttl             time.Duration
	cleanupInterval time.Duration
	l               log.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// Config configures the session store. Zero values select defaults.
type Config struct {
	Window          int
	TTL             time.Duration
	CleanupInterval time.Duration
}

// NewStore creates a session store and starts the idle-session sweep.
func NewStore(cfg Config, l log.Logger) *Store {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	s := &Store{
		sessions:        make(map[string]*Session),
		window:          cfg.Window,
		ttl:             cfg.TTL,
		cleanupInterval: cfg.CleanupInterval,
		l:               l,
		stop:            make(chan struct{}),
	}

	go s.cleanupExpiredSessions()

	return s
}

// Window returns the configured turn window.
func (s *Store) Window() int {
	return s.window
}

// GetOrCreate returns the session for id, allocating an empty one on
// first reference. Idempotent.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check: another goroutine may have created it between locks.
	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	now := time.Now()
	sess = &Session{ID: id, CreatedAt: now, lastActive: now}
	s.sessions[id] = sess
	return sess
}

// Append adds a turn to the session and applies the window eviction
// policy atomically. Eviction is FIFO truncation to the last Window
// turns, computed against the true post-append length.
func (s *Store) Append(id string, turn Turn) {
	sess := s.GetOrCreate(id)

	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, turn)
	if excess := len(sess.turns) - s.window; excess > 0 {
		sess.turns = append(sess.turns[:0:0], sess.turns[excess:]...)
	}
	sess.lastActive = time.Now()
}

// Snapshot returns a copy of the session's turns in conversational
// order. The copy is safe to read while other goroutines append.
func (s *Store) Snapshot(id string) []Turn {
	sess := s.GetOrCreate(id)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	snapshot := make([]Turn, len(sess.turns))
	copy(snapshot, sess.turns)
	return snapshot
}

// Len returns the number of turns currently held for the session.
func (s *Store) Len(id string) int {
	sess := s.GetOrCreate(id)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.turns)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup sweep.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// cleanupExpiredSessions periodically removes sessions idle longer than
// the TTL. Within-session turn eviction is handled by Append; this sweep
// bounds whole-session growth over the process lifetime.
func (s *Store) cleanupExpiredSessions() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var removed int
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 && s.l != nil {
		s.l.Infof(context.Background(), "session store: cleaned up %d expired session(s)", removed)
	}
}
