package draft

import (
	"context"
	"sync"
)

// Memory is the fallback store used when no database is configured. Drafts
// survive for the life of the process only.
type Memory struct {
	mu      sync.RWMutex
	tickets map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{tickets: make(map[string]map[string]string)}
}

func (m *Memory) Put(_ context.Context, ticket, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value == "" {
		if fields, ok := m.tickets[ticket]; ok {
			delete(fields, field)
			if len(fields) == 0 {
				delete(m.tickets, ticket)
			}
		}
		return nil
	}

	fields, ok := m.tickets[ticket]
	if !ok {
		fields = make(map[string]string)
		m.tickets[ticket] = fields
	}
	fields[field] = value
	return nil
}

func (m *Memory) Get(_ context.Context, ticket, field string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tickets[ticket][field], nil
}

func (m *Memory) Fields(_ context.Context, ticket string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields := make(map[string]string, len(m.tickets[ticket]))
	for field, value := range m.tickets[ticket] {
		fields[field] = value
	}
	return fields, nil
}

func (m *Memory) ClearTicket(_ context.Context, ticket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tickets, ticket)
	return nil
}
