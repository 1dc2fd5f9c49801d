package pkg

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-device-license-go/constant"
)

// EntityNotFoundError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil && strings.TrimSpace(e.Message) == "" {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// EntityConflictError records an error indicating an entity already exists in some repository
// You can use it to representing a Database conflict, cache or any other repository.
type EntityConflictError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityConflictError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityConflictError) Unwrap() error {
	return e.Err
}

// UnauthorizedError indicates an operation that couldn't be performant because there's no user authenticated.
type UnauthorizedError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e UnauthorizedError) Error() string {
	return e.Message
}

// ForbiddenError indicates an operation that couldn't be performant because the authenticated user has no sufficient privileges.
type ForbiddenError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e ForbiddenError) Error() string {
	return e.Message
}

// UnprocessableOperationError indicates an operation that couldn't be performant because it's invalid.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// HTTPError indicates a http error raised in a http client.
type HTTPError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	StatusCode int
	Err        error
}

func (e HTTPError) Error() string {
	return e.Message
}

// FailedPreconditionError indicates a precondition failed during an operation.
type FailedPreconditionError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e FailedPreconditionError) Error() string {
	return e.Message
}

// InternalServerError indicates a precondition failed during an operation.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
//
// No parameters.
// Returns a string.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationKnownFieldsError.
//
// No parameters.
// Returns a string.
func (r ValidationKnownFieldsError) Error() string {
	return r.Message
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// Methods to create errors for different scenarios:

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
//
// Parameters:
// - err: The error to be validated.
// - entityType: The type of the entity associated with the error.
//
// Returns:
// - An InternalServerError with the appropriate code, title, message.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
// error: The appropriate business error with code, title, and message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrLicenseNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrLicenseNotFound.Error(),
			Title:      "License not found",
			Message:    "No license matches the given identifier. Please verify the identifier and try again.",
		},
		constant.ErrDeviceNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrDeviceNotFound.Error(),
			Title:      "Device registration not found",
			Message:    "No device registration matches the given identifier. It may already have been revoked.",
		},
		constant.ErrKeyGeneration: InternalServerError{
			EntityType: entityType,
			Code:       constant.ErrKeyGeneration.Error(),
			Title:      "License key generation failed",
			Message:    "A license key could not be generated. No license was created. Please try again.",
		},
		constant.ErrInvalidLicenseStatus: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidLicenseStatus.Error(),
			Title:      "Invalid license status",
			Message:    fmt.Sprintf("The status '%v' is not one of active, expired or revoked.", args...),
		},
		constant.ErrMissingUserID: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingUserID.Error(),
			Title:      "Missing user ID",
			Message:    "A license must be issued to a user. Please provide a non-empty user ID.",
		},
		constant.ErrInvalidMaxDevices: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidMaxDevices.Error(),
			Title:      "Invalid maximum devices",
			Message:    fmt.Sprintf("The maximum number of devices must be at least 1, got %v.", args...),
		},
		constant.ErrDuplicateLicenseKey: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrDuplicateLicenseKey.Error(),
			Title:      "Duplicate license key",
			Message:    "The generated license key already exists. Please try again.",
		},
		constant.ErrInvalidRequestBody: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidRequestBody.Error(),
			Title:      "Invalid request body",
			Message:    "The request body is malformed or is missing required fields.",
		},
		constant.ErrUnauthorizedAdmin: UnauthorizedError{
			EntityType: entityType,
			Code:       constant.ErrUnauthorizedAdmin.Error(),
			Title:      "Unauthorized",
			Message:    "A valid admin token is required to perform this operation.",
		},
		constant.ErrNotInitialized: FailedPreconditionError{
			EntityType: entityType,
			Code:       constant.ErrNotInitialized.Error(),
			Title:      "Client not initialized",
			Message:    "The activation record has not been initialized on this installation.",
		},
		constant.ErrNotActivated: FailedPreconditionError{
			EntityType: entityType,
			Code:       constant.ErrNotActivated.Error(),
			Title:      "Not activated",
			Message:    "This installation has not been activated with a license key.",
		},
		constant.ErrInvalidLicenseKey: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidLicenseKey.Error(),
			Title:      "Invalid license key format",
			Message:    "Invalid license key format",
		},
		constant.ErrActivationRejected: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrActivationRejected.Error(),
			Title:      "Activation rejected",
			Message:    fmt.Sprintf("%v", args...),
		},
		constant.ErrLicenseInvalid: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrLicenseInvalid.Error(),
			Title:      "License is not valid",
			Message:    fmt.Sprintf("License is not valid: %v", args...),
		},
		constant.ErrAlreadyRecording: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrAlreadyRecording.Error(),
			Title:      "Already recording",
			Message:    "Already recording",
		},
		constant.ErrNotRecording: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrNotRecording.Error(),
			Title:      "Not recording",
			Message:    "Not recording",
		},
		constant.ErrRateLimited: HTTPError{
			EntityType: entityType,
			Code:       constant.ErrRateLimited.Error(),
			Title:      "Too many requests",
			Message:    "Too many validation requests from this address. Please retry later.",
			StatusCode: 429,
		},
		constant.ErrInvalidLicenseID: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidLicenseID.Error(),
			Title:      "Invalid identifier",
			Message:    fmt.Sprintf("The identifier '%v' is not a valid UUID.", args...),
		},
		constant.ErrRecordingBufferIsFull: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrRecordingBufferIsFull.Error(),
			Title:      "Recording buffer is full",
			Message:    "The recording buffer is full. Stop or reset the recording before appending more events.",
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
