package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
)

// Revalidator is the operation the manager runs on every tick
type Revalidator interface {
	Revalidate(ctx context.Context) error
}

// Manager runs periodic revalidation in the background
type Manager struct {
	interval              time.Duration
	started               bool
	mu                    sync.Mutex
	cancel                context.CancelFunc
	done                  chan struct{}
	revalidator           Revalidator
	logger                log.Logger
	lastAttemptedRefresh  time.Time
	lastSuccessfulRefresh time.Time
}

// New creates a new background refresh manager
func New(revalidator Revalidator, interval time.Duration, logger log.Logger) *Manager {
	return &Manager{
		revalidator: revalidator,
		interval:    interval,
		logger:      logger,
	}
}

// Start begins the background refresh process with the first tick one full
// interval away. Calling Start while running is a no-op.
func (m *Manager) Start(ctx context.Context) {
	m.StartAfter(ctx, m.interval)
}

// StartAfter is Start with the first tick firstDelay away. A delay <= 0
// revalidates right away. Calling StartAfter while running is a no-op.
func (m *Manager) StartAfter(ctx context.Context, firstDelay time.Duration) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}

	refreshCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.started = true
	m.mu.Unlock()

	if firstDelay < 0 {
		firstDelay = 0
	}

	go func() {
		defer close(done)

		m.logger.Infof("Starting background license revalidation every %s, next in %s", m.interval, firstDelay.Round(time.Second))

		first := time.NewTimer(firstDelay)
		defer first.Stop()

		select {
		case <-refreshCtx.Done():
			m.logger.Info("Background license revalidation stopped")
			return

		case <-first.C:
			m.attempt(refreshCtx)
		}

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-refreshCtx.Done():
				m.logger.Info("Background license revalidation stopped")
				return

			case <-ticker.C:
				m.attempt(refreshCtx)
			}
		}
	}()
}

// Shutdown stops the background refresh process. It does not wait for an
// in-flight revalidation, so it is safe to call from inside one.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.started = false
	m.logger.Info("Background license revalidation shutdown complete")
}

// Wait blocks until the last started loop has exited.
func (m *Manager) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether the ticker loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.started
}

// LastAttempt returns when the last tick ran and when the last successful one ran.
func (m *Manager) LastAttempt() (attempted, succeeded time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastAttemptedRefresh, m.lastSuccessfulRefresh
}

func (m *Manager) attempt(ctx context.Context) {
	m.mu.Lock()
	m.lastAttemptedRefresh = time.Now()
	m.mu.Unlock()

	m.logger.Debug("Running scheduled license revalidation")

	if err := m.revalidator.Revalidate(ctx); err != nil {
		m.logger.Warnf("Scheduled license revalidation failed: %v", err)
		return
	}

	m.mu.Lock()
	m.lastSuccessfulRefresh = time.Now()
	m.mu.Unlock()

	m.logger.Debug("Scheduled license revalidation successful")
}
