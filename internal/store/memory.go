package store

import (
	"context"
	"sync"

	"github.com/LerianStudio/lib-device-license-go/model"
)

// MemoryStore keeps the record in process memory. Used by tests and ephemeral agents.
type MemoryStore struct {
	mu     sync.RWMutex
	record *model.ActivationRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*model.ActivationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.record.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, record *model.ActivationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record = record.Clone()

	return nil
}
