// Package service implements license issuance, validation and device binding.
package service

import (
	"time"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/pkg"
)

// Service is the stateless operations layer over the license store.
type Service struct {
	licenses          LicenseRepository
	devices           DeviceRepository
	audits            AuditRepository
	keys              pkg.KeyGenerator
	logger            log.Logger
	now               func() time.Time
	defaultMaxDevices int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for expiry checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKeyGenerator replaces the license key generator.
func WithKeyGenerator(gen pkg.KeyGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.keys = gen
		}
	}
}

// WithDefaultMaxDevices sets the device bound used when GenerateLicense gets none.
func WithDefaultMaxDevices(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultMaxDevices = n
		}
	}
}

// New creates a Service. A nil logger uses zap.
func New(licenses LicenseRepository, devices DeviceRepository, audits AuditRepository, logger log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	s := &Service{
		licenses:          licenses,
		devices:           devices,
		audits:            audits,
		keys:              pkg.RandomKeyGenerator{},
		logger:            logger,
		now:               time.Now,
		defaultMaxDevices: constant.DefaultMaxDevices,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// keyRef is how license keys appear in logs.
func keyRef(key string) string {
	return commons.HashSHA256(key)[:12]
}
