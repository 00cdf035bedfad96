package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store tracks the Recorders of live sessions in process memory. Data is
// lost when the process exits; the packet log itself is owned and persisted
// by the transport layer, so a restarted server rebuilds timelines by
// replaying the log into fresh Recorders.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Recorder
	opts     []Option
}

// NewStore constructs an empty Store. The given options are applied to every
// Recorder the store creates.
func NewStore(opts ...Option) *Store {
	return &Store{sessions: make(map[uuid.UUID]*Recorder), opts: opts}
}

// Create registers a new session and returns its identifier and Recorder.
func (s *Store) Create() (uuid.UUID, *Recorder) {
	id := uuid.New()
	r := NewRecorder(s.opts...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = r
	return id, r
}

// Get returns the Recorder for the given session, if it exists.
func (s *Store) Get(id uuid.UUID) (*Recorder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.sessions[id]
	return r, ok
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reset drops all sessions. Primarily useful in tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[uuid.UUID]*Recorder)
}
