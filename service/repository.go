package service

import (
	"context"
	"time"

	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mocks/license_repository.go -package=mocks . LicenseRepository,DeviceRepository,AuditRepository

// LicenseRepository persists licenses. Lookups of unknown rows return
// constant.ErrLicenseNotFound; a key collision on Create returns
// constant.ErrDuplicateLicenseKey.
type LicenseRepository interface {
	Create(ctx context.Context, license *model.License) error
	FindByKey(ctx context.Context, licenseKey string) (*model.License, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.License, error)
	List(ctx context.Context, userID string) ([]*model.License, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LicenseStatus) error
	ListLapsed(ctx context.Context, now time.Time) ([]*model.License, error)
}

// DeviceRepository persists device registrations.
type DeviceRepository interface {
	// RegisterDevice inserts reg if its fingerprint is new to the license and the
	// license has fewer than maxDevices registrations, or refreshes the existing
	// registration's last-verified time and address. The count check and the
	// write happen atomically.
	RegisterDevice(ctx context.Context, reg *model.DeviceRegistration, maxDevices int) (model.DeviceOutcome, error)
	// Delete removes the registration and returns it; constant.ErrDeviceNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.DeviceRegistration, error)
	ListByLicense(ctx context.Context, licenseID uuid.UUID) ([]*model.DeviceRegistration, error)
}

// AuditRepository is the append-only audit log.
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditLogEntry) error
	ListByLicense(ctx context.Context, licenseID uuid.UUID, limit, offset int) ([]*model.AuditLogEntry, error)
}
