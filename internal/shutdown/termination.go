package shutdown

import (
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/model"
)

// Handler is invoked when the client deactivates itself after repeated
// revalidation failures.
type Handler func(reason model.Reason)

// Manager holds the deactivation handler
type Manager struct {
	handler Handler
	logger  log.Logger
	mu      sync.RWMutex
}

// New creates a manager whose default behavior only logs.
func New(logger log.Logger) *Manager {
	return &Manager{logger: logger}
}

// SetHandler updates the deactivation handler.
// This should be called during application startup, before the refresh loop starts.
func (m *Manager) SetHandler(handler Handler) {
	if handler == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// Terminate invokes the deactivation handler.
func (m *Manager) Terminate(reason model.Reason) {
	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()

	m.logger.Warnf("License deactivated on this installation: %s", reason)

	if handler != nil {
		handler(reason)
	}
}
