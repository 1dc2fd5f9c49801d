// Package expiry periodically moves lapsed licenses to the expired status.
package expiry

import (
	"context"
	"errors"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/robfig/cron/v3"
)

// Expirer is the operation the sweeper runs on schedule.
type Expirer interface {
	ExpireLapsedLicenses(ctx context.Context) (int, error)
}

// Sweeper runs Expirer on a cron schedule.
type Sweeper struct {
	expirer Expirer
	spec    string
	cron    *cron.Cron
	logger  log.Logger
	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper for the given cron spec (e.g. "@every 1h").
func NewSweeper(expirer Expirer, spec string, logger log.Logger) *Sweeper {
	return &Sweeper{
		expirer: expirer,
		spec:    spec,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the schedule and starts the cron runner.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("expiry sweeper already running")
	}

	if _, err := s.cron.AddFunc(s.spec, s.RunNow); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.Infof("License expiry sweeper started (%s)", s.spec)

	return nil
}

// Stop stops the schedule. The returned context is done once a running sweep finishes.
func (s *Sweeper) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		return ctx
	}

	s.running = false
	s.logger.Info("Stopping license expiry sweeper")

	return s.cron.Stop()
}

// RunNow performs one sweep immediately.
func (s *Sweeper) RunNow() {
	n, err := s.expirer.ExpireLapsedLicenses(context.Background())
	if err != nil {
		s.logger.Errorf("License expiry sweep failed: %v", err)
		return
	}

	if n > 0 {
		s.logger.Infof("License expiry sweep marked %d license(s) expired", n)
		return
	}

	s.logger.Debug("License expiry sweep found nothing to expire")
}
