package model

import (
	"time"

	"github.com/google/uuid"
)

// LicenseStatus is the lifecycle state of a license.
type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusExpired LicenseStatus = "expired"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

// IsValid reports whether s is one of the three known statuses.
func (s LicenseStatus) IsValid() bool {
	switch s {
	case LicenseStatusActive, LicenseStatusExpired, LicenseStatusRevoked:
		return true
	}

	return false
}

// License is one purchased entitlement. Rows are owned by the backend store.
type License struct {
	ID         uuid.UUID      `json:"id"`
	LicenseKey string         `json:"license_key"`
	UserID     string         `json:"user_id"`
	Status     LicenseStatus  `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	MaxDevices int            `json:"max_devices"`
	Metadata   map[string]any `json:"metadata"`
}

// IsLapsed reports whether the expiry timestamp is set and before now.
func (l *License) IsLapsed(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// Snapshot returns the subset of the license that is safe to hand to a client.
func (l *License) Snapshot() LicenseSnapshot {
	return LicenseSnapshot{
		ExpiresAt:  l.ExpiresAt,
		Status:     l.Status,
		MaxDevices: l.MaxDevices,
	}
}

// DeviceRegistration binds one installation fingerprint to a license.
type DeviceRegistration struct {
	ID                uuid.UUID      `json:"id"`
	LicenseID         uuid.UUID      `json:"license_id"`
	DeviceFingerprint string         `json:"device_fingerprint"`
	IPAddress         string         `json:"ip_address,omitempty"`
	LastVerifiedAt    time.Time      `json:"last_verified_at"`
	CreatedAt         time.Time      `json:"created_at"`
	Metadata          map[string]any `json:"metadata"`
}

// DeviceOutcome is the result of the atomic register-or-refresh primitive.
type DeviceOutcome string

const (
	// DeviceRegistered means a new registration row was inserted.
	DeviceRegistered DeviceOutcome = "registered"
	// DeviceRefreshed means the fingerprint was already bound and its last-verified time was updated.
	DeviceRefreshed DeviceOutcome = "refreshed"
	// DeviceLimitReached means the fingerprint is new and the license is already at max devices.
	DeviceLimitReached DeviceOutcome = "limit_reached"
)

// AuditEventType classifies an audit log entry.
type AuditEventType string

const (
	AuditEventValidation    AuditEventType = "validation"
	AuditEventStatusChange  AuditEventType = "status_change"
	AuditEventDeviceRevoked AuditEventType = "device_revoked"
)

// AuditLogEntry is an append-only record of a license lifecycle event.
type AuditLogEntry struct {
	ID        uuid.UUID      `json:"id"`
	LicenseID uuid.UUID      `json:"license_id"`
	EventType AuditEventType `json:"event_type"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
