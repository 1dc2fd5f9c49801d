package model

import "time"

// ActivationRecord is the local, per-installation cache of activation state.
// It is never authoritative beyond the grace period.
type ActivationRecord struct {
	Activated      bool          `json:"isActivated"`
	LicenseKey     string        `json:"licenseKey,omitempty"`
	LastValidation *time.Time    `json:"lastValidation,omitempty"`
	ExpiresAt      *time.Time    `json:"expiresAt,omitempty"`
	Status         LicenseStatus `json:"licenseStatus,omitempty"`
	MaxDevices     int           `json:"maxDevices,omitempty"`
	DeviceID       string        `json:"deviceId"`
	FailureCount   int           `json:"failureCount"`
	ActivatedAt    *time.Time    `json:"activatedAt,omitempty"`
}

// Clone returns a deep copy so cached values are never mutated in place.
func (r *ActivationRecord) Clone() *ActivationRecord {
	if r == nil {
		return nil
	}

	c := *r
	c.LastValidation = cloneTime(r.LastValidation)
	c.ExpiresAt = cloneTime(r.ExpiresAt)
	c.ActivatedAt = cloneTime(r.ActivatedAt)

	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t

	return &v
}

// CheckResult is the outcome of the local status check.
type CheckResult struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

// ActivationStatus is a read-only view of the activation record for UIs.
type ActivationStatus struct {
	Activated      bool          `json:"isActivated"`
	LicenseKey     string        `json:"licenseKey,omitempty"`
	LastValidation *time.Time    `json:"lastValidation"`
	ExpiresAt      *time.Time    `json:"expiresAt"`
	Status         LicenseStatus `json:"licenseStatus,omitempty"`
	MaxDevices     int           `json:"maxDevices"`
	State          string        `json:"state"`
}
