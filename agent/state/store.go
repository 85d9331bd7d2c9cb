package state

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidSession = errors.New("session id is empty")
)

// customerIDAlphabet omits characters that read ambiguously (0/O, 1/I/L).
const customerIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCustomerID generates a short readable customer id, format SI-XXXX.
func NewCustomerID() string {
	var b strings.Builder
	b.WriteString("SI-")
	for i := 0; i < 4; i++ {
		b.WriteByte(customerIDAlphabet[rand.IntN(len(customerIDAlphabet))])
	}
	return b.String()
}

// Store holds sessions in process memory, keyed by session id. It hands out
// at most one session per turn: Acquire blocks until no other turn holds the
// same session, which is how the transport boundary serializes turns per
// session id. Sessions live for the process lifetime; there is no expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry

	now func() time.Time
}

type sessionEntry struct {
	turnMu  sync.Mutex
	session *Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Acquire returns the session for sessionID, creating it on first contact,
// and locks it for the duration of one turn. The caller must invoke the
// returned release function when the turn finishes. created reports whether
// this call brought the session into existence.
func (s *Store) Acquire(sessionID string) (sess *Session, release func(), created bool, err error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, false, ErrInvalidSession
	}

	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{
			session: NewSession(NewCustomerID(), sessionID, s.now()),
		}
		s.sessions[sessionID] = entry
		created = true
	}
	s.mu.Unlock()

	entry.turnMu.Lock()
	return entry.session, entry.turnMu.Unlock, created, nil
}

// Peek returns the session for sessionID without turn locking, or nil when
// absent. Intended for read-only inspection such as health endpoints and
// tests.
func (s *Store) Peek(sessionID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions[sessionID]; ok {
		return entry.session
	}
	return nil
}

// Delete discards a session. In-flight turns keep their reference; the next
// Acquire for the same id starts fresh.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
