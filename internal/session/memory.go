package session

import (
	"context"
	"sync"
	"time"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

type memoryEntry struct {
	session   model.Session
	expiresAt time.Time
}

// Memory is the fallback store used when Redis is not configured. Expired
// entries are dropped lazily on read.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]memoryEntry)}
}

func (m *Memory) Save(_ context.Context, s *model.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = memoryEntry{
		session:   *s,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	s := entry.session
	return &s, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
