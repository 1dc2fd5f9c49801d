package constant

// License policy constants
const (
	// DefaultMaxDevices is the device bound applied when a license is generated without one
	DefaultMaxDevices = 3
	// DefaultFailureThreshold is the number of consecutive failed revalidations that force deactivation
	DefaultFailureThreshold = 3
	// MinLicenseKeyLength rejects obviously malformed keys before any network call
	MinLicenseKeyLength = 10
	// DeviceIDBytes is the amount of random data behind a device fingerprint
	DeviceIDBytes = 16
	// LicenseKeyGroups and LicenseKeyGroupSize shape generated keys (XXXXX-XXXXX-XXXXX-XXXXX-XXXXX)
	LicenseKeyGroups    = 5
	LicenseKeyGroupSize = 5
	// MaxRecordedEvents bounds the in-memory recording buffer
	MaxRecordedEvents = 10000
	// DefaultAuditPageSize is used when listing audit entries without a limit
	DefaultAuditPageSize = 50
	// DefaultExpirySweepSpec is the cron spec of the lapsed-license sweep
	DefaultExpirySweepSpec = "@every 1h"
)
