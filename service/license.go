package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/google/uuid"
)

const licenseEntity = "License"

type generateParams struct {
	maxDevices int
	metadata   map[string]any
}

// GenerateOption customizes a license at creation.
type GenerateOption func(*generateParams)

// WithMaxDevices overrides the default device bound.
func WithMaxDevices(n int) GenerateOption {
	return func(p *generateParams) {
		p.maxDevices = n
	}
}

// WithMetadata attaches free-form metadata.
func WithMetadata(metadata map[string]any) GenerateOption {
	return func(p *generateParams) {
		p.metadata = metadata
	}
}

// GenerateLicense issues a new active license for userID.
// A key generation failure is returned as is and never retried.
func (s *Service) GenerateLicense(ctx context.Context, userID string, expiresAt *time.Time, opts ...GenerateOption) (*model.License, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkg.ValidateBusinessError(constant.ErrMissingUserID, licenseEntity)
	}

	params := generateParams{maxDevices: s.defaultMaxDevices}
	for _, opt := range opts {
		opt(&params)
	}

	if params.maxDevices < 1 {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidMaxDevices, licenseEntity, params.maxDevices)
	}

	key, err := s.keys.Generate()
	if err != nil || key == "" {
		s.logger.Errorf("License key generation failed for user %s: %v", userID, err)
		return nil, pkg.ValidateBusinessError(constant.ErrKeyGeneration, licenseEntity)
	}

	if params.metadata == nil {
		params.metadata = map[string]any{}
	}

	license := &model.License{
		ID:         uuid.New(),
		LicenseKey: key,
		UserID:     userID,
		Status:     model.LicenseStatusActive,
		CreatedAt:  s.now().UTC(),
		ExpiresAt:  expiresAt,
		MaxDevices: params.maxDevices,
		Metadata:   params.metadata,
	}

	if err := s.licenses.Create(ctx, license); err != nil {
		if errors.Is(err, constant.ErrDuplicateLicenseKey) {
			return nil, pkg.ValidateBusinessError(constant.ErrDuplicateLicenseKey, licenseEntity)
		}

		s.logger.Errorf("Failed to create license for user %s: %v", userID, err)

		return nil, pkg.ValidateInternalError(err, licenseEntity)
	}

	s.logger.Infof("License %s issued to user %s (max devices %d)", license.ID, userID, license.MaxDevices)

	return license, nil
}

// ValidateLicense checks key against the store and binds deviceFingerprint to it.
// It never returns an error: storage failures become an internal_error result.
func (s *Service) ValidateLicense(ctx context.Context, req model.ValidateRequest) model.ValidationResult {
	if strings.TrimSpace(req.LicenseKey) == "" || strings.TrimSpace(req.DeviceFingerprint) == "" {
		return model.Invalid(model.ReasonInvalidRequest, "License key and device fingerprint are required")
	}

	license, err := s.licenses.FindByKey(ctx, req.LicenseKey)
	if err != nil {
		if errors.Is(err, constant.ErrLicenseNotFound) {
			s.logger.Debugf("Validation for unknown license key %s", keyRef(req.LicenseKey))
			return model.Invalid(model.ReasonNotFound, "Invalid license key")
		}

		return s.internalFailure("look up license", err)
	}

	if license.Status != model.LicenseStatusActive {
		return model.Invalid(model.ReasonForStatus(license.Status), fmt.Sprintf("License is %s", license.Status))
	}

	now := s.now().UTC()

	if license.IsLapsed(now) {
		s.logger.Infof("License %s passed its expiry, marking expired", license.ID)
		s.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusExpired)

		return model.Invalid(model.ReasonExpired, "License has expired")
	}

	outcome, err := s.devices.RegisterDevice(ctx, &model.DeviceRegistration{
		ID:                uuid.New(),
		LicenseID:         license.ID,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         req.IPAddress,
		LastVerifiedAt:    now,
		CreatedAt:         now,
		Metadata:          map[string]any{},
	}, license.MaxDevices)
	if err != nil {
		return s.internalFailure("register device", err)
	}

	if outcome == model.DeviceLimitReached {
		s.logger.Infof("License %s rejected new device: limit of %d reached", license.ID, license.MaxDevices)
		return model.Invalid(model.ReasonMaxDevicesReached, fmt.Sprintf("Maximum number of devices (%d) reached", license.MaxDevices))
	}

	if outcome == model.DeviceRegistered {
		s.logger.Infof("License %s registered a new device", license.ID)
	}

	s.logEvent(ctx, license.ID, model.AuditEventValidation, map[string]any{
		"device_fingerprint": req.DeviceFingerprint,
		"ip_address":         req.IPAddress,
	})

	return model.Valid(license.Snapshot())
}

// UpdateLicenseStatus writes status unconditionally and records a status_change
// audit entry. It reports false for an unknown status, an unknown license or a
// storage failure.
func (s *Service) UpdateLicenseStatus(ctx context.Context, licenseID uuid.UUID, status model.LicenseStatus) bool {
	if !status.IsValid() {
		s.logger.Warnf("Rejected status %q for license %s", status, licenseID)
		return false
	}

	if err := s.licenses.UpdateStatus(ctx, licenseID, status); err != nil {
		if errors.Is(err, constant.ErrLicenseNotFound) {
			s.logger.Warnf("Status update for unknown license %s", licenseID)
		} else {
			s.logger.Errorf("Failed to update status of license %s: %v", licenseID, err)
		}

		return false
	}

	s.logEvent(ctx, licenseID, model.AuditEventStatusChange, map[string]any{"new_status": string(status)})

	return true
}

// ExpireLapsedLicenses moves every active license past its expiry to expired
// and returns how many were updated.
func (s *Service) ExpireLapsedLicenses(ctx context.Context) (int, error) {
	lapsed, err := s.licenses.ListLapsed(ctx, s.now().UTC())
	if err != nil {
		s.logger.Errorf("Failed to list lapsed licenses: %v", err)
		return 0, pkg.ValidateInternalError(err, licenseEntity)
	}

	expired := 0

	for _, license := range lapsed {
		if err := ctx.Err(); err != nil {
			return expired, err
		}

		if s.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusExpired) {
			expired++
		}
	}

	return expired, nil
}

// GetLicense returns one license.
func (s *Service) GetLicense(ctx context.Context, id uuid.UUID) (*model.License, error) {
	license, err := s.licenses.FindByID(ctx, id)
	if err != nil {
		return nil, s.readError(err, constant.ErrLicenseNotFound, licenseEntity)
	}

	return license, nil
}

// ListLicenses returns the licenses of userID, or every license when userID is empty.
func (s *Service) ListLicenses(ctx context.Context, userID string) ([]*model.License, error) {
	licenses, err := s.licenses.List(ctx, strings.TrimSpace(userID))
	if err != nil {
		s.logger.Errorf("Failed to list licenses: %v", err)
		return nil, pkg.ValidateInternalError(err, licenseEntity)
	}

	return licenses, nil
}

func (s *Service) internalFailure(step string, err error) model.ValidationResult {
	s.logger.Errorf("Error validating license (%s): %v", step, err)
	return model.Invalid(model.ReasonInternalError, "Error validating license")
}

func (s *Service) readError(err, notFound error, entity string) error {
	if errors.Is(err, notFound) {
		return pkg.ValidateBusinessError(notFound, entity)
	}

	s.logger.Errorf("Failed to read %s: %v", entity, err)

	return pkg.ValidateInternalError(err, entity)
}
