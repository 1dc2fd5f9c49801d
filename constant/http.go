package constant

// HeaderConstants defines HTTP header names used in requests
const (
	// AdminTokenHeader carries the operator token on admin routes
	AdminTokenHeader = "X-Admin-Token"
)

// Route constants for the license server
const (
	// ValidatePath is the validation endpoint consumed by installations
	ValidatePath = "/v1/licenses/validate"
)

// TimeConstants defines timeout and interval values
const (
	// DefaultHTTPTimeoutSeconds is the default HTTP client timeout in seconds
	DefaultHTTPTimeoutSeconds = 10
	// DefaultRevalidationIntervalHours is the default license revalidation interval in hours
	DefaultRevalidationIntervalHours = 12
	// DefaultGracePeriodHours is how long a cached activation stays usable without a successful revalidation
	DefaultGracePeriodHours = 72
	// DefaultShutdownTimeoutSeconds bounds graceful shutdown of the HTTP servers
	DefaultShutdownTimeoutSeconds = 15
)

// DefaultValidationURL is the production validation endpoint
const DefaultValidationURL = "https://license.lerian.io" + ValidatePath
