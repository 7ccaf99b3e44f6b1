// Package session provides the in-memory store for in-progress quiz sessions.
// A session exists only between the trigger phrase and the final answer; it
// never survives a completed quiz or a process restart.
package session

import (
	"sync"

	"github.com/kaodiag/facebot/bot/quiz"
)

// Session holds the answers collected so far for one user.
// The unknown zero values double as "not answered yet"; HasFace
// distinguishes an explicit unknown answer from an absent one.
type Session struct {
	Face    quiz.FaceValue
	Line    quiz.LineValue
	HasFace bool
}

// Store owns all in-progress sessions keyed by LINE user id.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the session for a user, reporting whether one exists.
	Get(userID string) (Session, bool)
	// Put creates or overwrites the session for a user.
	Put(userID string, s Session)
	// Remove deletes the session for a user; removing an absent session is a no-op.
	Remove(userID string)
	// Len reports the number of in-progress sessions.
	Len() int
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore constructs the map-backed Store used in production.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]Session),
	}
}

func (m *memoryStore) Get(userID string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *memoryStore) Put(userID string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

func (m *memoryStore) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
