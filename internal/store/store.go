package store

import (
	"context"
	"sync"

	"unlock_bot/internal/models"
)

// Store maps a SecretID to its payload. Put overwrites (last write wins),
// Get reports absence with ok == false. There is no removal: entries live
// as long as the process does.
type Store interface {
	Put(ctx context.Context, id models.SecretID, payload models.SecretPayload)
	Get(ctx context.Context, id models.SecretID) (models.SecretPayload, bool)
	Len() int
}

// Memory: хранилище в памяти процесса, без вытеснения и TTL.
type Memory struct {
	mu   sync.RWMutex
	data map[models.SecretID]models.SecretPayload
}

// NewMemory instance
func NewMemory() *Memory {
	return &Memory{
		data: make(map[models.SecretID]models.SecretPayload),
	}
}

// Put in memory
func (m *Memory) Put(_ context.Context, id models.SecretID, payload models.SecretPayload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = payload
}

// Get from memory
func (m *Memory) Get(_ context.Context, id models.SecretID) (models.SecretPayload, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[id]
	return p, ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
