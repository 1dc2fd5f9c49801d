// Package memstore is an in-process license store for development and tests.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/google/uuid"
)

// Store holds licenses, device registrations and audit entries behind one mutex.
// Use Licenses, Devices and Audits to get the repository views.
type Store struct {
	mu       sync.Mutex
	licenses map[uuid.UUID]*model.License
	byKey    map[string]uuid.UUID
	devices  map[uuid.UUID]*model.DeviceRegistration
	audits   []*model.AuditLogEntry
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		licenses: make(map[uuid.UUID]*model.License),
		byKey:    make(map[string]uuid.UUID),
		devices:  make(map[uuid.UUID]*model.DeviceRegistration),
	}
}

// Licenses returns the license repository view.
func (s *Store) Licenses() *LicenseRepository { return &LicenseRepository{s: s} }

// Devices returns the device repository view.
func (s *Store) Devices() *DeviceRepository { return &DeviceRepository{s: s} }

// Audits returns the audit repository view.
func (s *Store) Audits() *AuditRepository { return &AuditRepository{s: s} }

// LicenseRepository is the license view of a Store.
type LicenseRepository struct{ s *Store }

func (r *LicenseRepository) Create(_ context.Context, license *model.License) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.byKey[license.LicenseKey]; exists {
		return constant.ErrDuplicateLicenseKey
	}

	r.s.licenses[license.ID] = cloneLicense(license)
	r.s.byKey[license.LicenseKey] = license.ID

	return nil
}

func (r *LicenseRepository) FindByKey(_ context.Context, licenseKey string) (*model.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.byKey[licenseKey]
	if !ok {
		return nil, constant.ErrLicenseNotFound
	}

	return cloneLicense(r.s.licenses[id]), nil
}

func (r *LicenseRepository) FindByID(_ context.Context, id uuid.UUID) (*model.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	license, ok := r.s.licenses[id]
	if !ok {
		return nil, constant.ErrLicenseNotFound
	}

	return cloneLicense(license), nil
}

func (r *LicenseRepository) List(_ context.Context, userID string) ([]*model.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.License, 0)

	for _, license := range r.s.licenses {
		if userID == "" || license.UserID == userID {
			out = append(out, cloneLicense(license))
		}
	}

	slices.SortFunc(out, func(a, b *model.License) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return out, nil
}

func (r *LicenseRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.LicenseStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	license, ok := r.s.licenses[id]
	if !ok {
		return constant.ErrLicenseNotFound
	}

	license.Status = status

	return nil
}

func (r *LicenseRepository) ListLapsed(_ context.Context, now time.Time) ([]*model.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.License, 0)

	for _, license := range r.s.licenses {
		if license.Status == model.LicenseStatusActive && license.IsLapsed(now) {
			out = append(out, cloneLicense(license))
		}
	}

	return out, nil
}

// DeviceRepository is the device view of a Store.
type DeviceRepository struct{ s *Store }

// RegisterDevice holds the store mutex across the count and the write.
func (r *DeviceRepository) RegisterDevice(_ context.Context, reg *model.DeviceRegistration, maxDevices int) (model.DeviceOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.licenses[reg.LicenseID]; !ok {
		return "", constant.ErrLicenseNotFound
	}

	count := 0

	for _, d := range r.s.devices {
		if d.LicenseID != reg.LicenseID {
			continue
		}

		if d.DeviceFingerprint == reg.DeviceFingerprint {
			d.LastVerifiedAt = reg.LastVerifiedAt
			d.IPAddress = reg.IPAddress

			return model.DeviceRefreshed, nil
		}

		count++
	}

	if count >= maxDevices {
		return model.DeviceLimitReached, nil
	}

	r.s.devices[reg.ID] = cloneDevice(reg)

	return model.DeviceRegistered, nil
}

func (r *DeviceRepository) Delete(_ context.Context, id uuid.UUID) (*model.DeviceRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	device, ok := r.s.devices[id]
	if !ok {
		return nil, constant.ErrDeviceNotFound
	}

	delete(r.s.devices, id)

	return device, nil
}

func (r *DeviceRepository) ListByLicense(_ context.Context, licenseID uuid.UUID) ([]*model.DeviceRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.DeviceRegistration, 0)

	for _, d := range r.s.devices {
		if d.LicenseID == licenseID {
			out = append(out, cloneDevice(d))
		}
	}

	slices.SortFunc(out, func(a, b *model.DeviceRegistration) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

// AuditRepository is the audit view of a Store.
type AuditRepository struct{ s *Store }

func (r *AuditRepository) Append(_ context.Context, entry *model.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *entry
	c.Details = maps.Clone(entry.Details)
	r.s.audits = append(r.s.audits, &c)

	return nil
}

// ListByLicense returns entries newest first.
func (r *AuditRepository) ListByLicense(_ context.Context, licenseID uuid.UUID, limit, offset int) ([]*model.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.AuditLogEntry, 0)

	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if r.s.audits[i].LicenseID == licenseID {
			c := *r.s.audits[i]
			out = append(out, &c)
		}
	}

	if offset >= len(out) {
		return []*model.AuditLogEntry{}, nil
	}

	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}

func cloneLicense(l *model.License) *model.License {
	c := *l
	c.Metadata = maps.Clone(l.Metadata)

	if l.ExpiresAt != nil {
		exp := *l.ExpiresAt
		c.ExpiresAt = &exp
	}

	return &c
}

func cloneDevice(d *model.DeviceRegistration) *model.DeviceRegistration {
	c := *d
	c.Metadata = maps.Clone(d.Metadata)

	return &c
}

var (
	_ service.LicenseRepository = (*LicenseRepository)(nil)
	_ service.DeviceRepository  = (*DeviceRepository)(nil)
	_ service.AuditRepository   = (*AuditRepository)(nil)
)
