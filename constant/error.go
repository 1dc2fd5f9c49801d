package constant

import "errors"

// Structured error codes for license service and client responses
var (
	ErrInternalServer        = errors.New("LCS-0001")
	ErrLicenseNotFound       = errors.New("LCS-0002")
	ErrDeviceNotFound        = errors.New("LCS-0003")
	ErrKeyGeneration         = errors.New("LCS-0004")
	ErrInvalidLicenseStatus  = errors.New("LCS-0005")
	ErrMissingUserID         = errors.New("LCS-0006")
	ErrInvalidMaxDevices     = errors.New("LCS-0007")
	ErrDuplicateLicenseKey   = errors.New("LCS-0008")
	ErrInvalidRequestBody    = errors.New("LCS-0009")
	ErrUnauthorizedAdmin     = errors.New("LCS-0010")
	ErrNotInitialized        = errors.New("LCS-0011")
	ErrNotActivated          = errors.New("LCS-0012")
	ErrInvalidLicenseKey     = errors.New("LCS-0013")
	ErrActivationRejected    = errors.New("LCS-0014")
	ErrLicenseInvalid        = errors.New("LCS-0015")
	ErrAlreadyRecording      = errors.New("LCS-0016")
	ErrNotRecording          = errors.New("LCS-0017")
	ErrRateLimited           = errors.New("LCS-0018")
	ErrInvalidLicenseID      = errors.New("LCS-0019")
	ErrRecordingBufferIsFull = errors.New("LCS-0020")
)
