package service

import (
	"context"
	"errors"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/google/uuid"
)

// RevokeDevice removes a registration, freeing a slot on its license, and
// records a device_revoked entry against the license. It reports false when
// the device does not exist or the store fails.
func (s *Service) RevokeDevice(ctx context.Context, deviceID uuid.UUID) bool {
	return s.RemoveDevice(ctx, deviceID) == nil
}

// RemoveDevice is RevokeDevice returning why the revocation failed: a
// device-not-found business error, or an internal error when the store fails.
func (s *Service) RemoveDevice(ctx context.Context, deviceID uuid.UUID) error {
	device, err := s.devices.Delete(ctx, deviceID)
	if err != nil {
		if errors.Is(err, constant.ErrDeviceNotFound) {
			s.logger.Warnf("Revoke of unknown device %s", deviceID)
			return pkg.ValidateBusinessError(constant.ErrDeviceNotFound, "DeviceRegistration")
		}

		s.logger.Errorf("Failed to revoke device %s: %v", deviceID, err)

		return pkg.ValidateInternalError(err, "DeviceRegistration")
	}

	s.logger.Infof("Device %s revoked from license %s", deviceID, device.LicenseID)

	s.logEvent(ctx, device.LicenseID, model.AuditEventDeviceRevoked, map[string]any{"device_id": deviceID.String()})

	return nil
}

// ListDevices returns the live registrations of a license.
func (s *Service) ListDevices(ctx context.Context, licenseID uuid.UUID) ([]*model.DeviceRegistration, error) {
	if _, err := s.GetLicense(ctx, licenseID); err != nil {
		return nil, err
	}

	devices, err := s.devices.ListByLicense(ctx, licenseID)
	if err != nil {
		return nil, s.readError(err, constant.ErrDeviceNotFound, "DeviceRegistration")
	}

	return devices, nil
}
