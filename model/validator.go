package model

import "time"

// Reason explains why a validation or local status check failed.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNotActivated       Reason = "not_activated"
	ReasonLicenseExpired     Reason = "license_expired"
	ReasonLicenseRevoked     Reason = "license_revoked"
	ReasonExpired            Reason = "expired"
	ReasonGracePeriodExpired Reason = "grace_period_expired"
	ReasonNotFound           Reason = "not_found"
	ReasonRevoked            Reason = "revoked"
	ReasonMaxDevicesReached  Reason = "max_devices_reached"
	ReasonInvalidRequest     Reason = "invalid_request"
	ReasonInternalError      Reason = "internal_error"
)

// ReasonForStatus maps a non-active stored status to the reason reported by the service.
func ReasonForStatus(s LicenseStatus) Reason {
	switch s {
	case LicenseStatusExpired:
		return ReasonExpired
	case LicenseStatusRevoked:
		return ReasonRevoked
	}

	return ReasonInternalError
}

// LicenseSnapshot is what a valid result carries back to an installation.
type LicenseSnapshot struct {
	ExpiresAt  *time.Time    `json:"expires_at"`
	Status     LicenseStatus `json:"status"`
	MaxDevices int           `json:"max_devices"`
}

// ValidationResult is either Valid with a snapshot or Invalid with a reason.
// Build it with Valid or Invalid only.
type ValidationResult struct {
	Valid   bool
	Reason  Reason
	Message string
	License *LicenseSnapshot
}

// Valid builds a successful result.
func Valid(snapshot LicenseSnapshot) ValidationResult {
	return ValidationResult{Valid: true, License: &snapshot}
}

// Invalid builds a failed result.
func Invalid(reason Reason, message string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason, Message: message}
}

// ValidateRequest is the input of the service validation operation.
type ValidateRequest struct {
	LicenseKey        string `json:"licenseKey" validate:"required"`
	DeviceFingerprint string `json:"deviceFingerprint" validate:"required"`
	IPAddress         string `json:"-"`
}

// ValidateResponse is the wire body of the validation endpoint.
type ValidateResponse struct {
	Valid       bool             `json:"valid"`
	Message     string           `json:"message,omitempty"`
	Reason      Reason           `json:"reason,omitempty"`
	LicenseData *LicenseSnapshot `json:"licenseData,omitempty"`
}

// ToResponse renders a result for the wire.
func (r ValidationResult) ToResponse() ValidateResponse {
	return ValidateResponse{
		Valid:       r.Valid,
		Message:     r.Message,
		Reason:      r.Reason,
		LicenseData: r.License,
	}
}

// ToResult converts a decoded wire body back into a result.
func (r ValidateResponse) ToResult() ValidationResult {
	if r.Valid {
		if r.LicenseData == nil {
			return ValidationResult{Valid: true}
		}

		return Valid(*r.LicenseData)
	}

	return Invalid(r.Reason, r.Message)
}

// ErrorResponse contains error information returned by the license API
type ErrorResponse struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
