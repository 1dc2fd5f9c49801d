package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/memstore"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/LerianStudio/lib-device-license-go/test/helper"
	"github.com/LerianStudio/lib-device-license-go/test/helper/testlogger"
	"github.com/LerianStudio/lib-device-license-go/test/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type env struct {
	svc    *service.Service
	store  *memstore.Store
	clock  *clock
	logger *testlogger.TestLogger
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := memstore.New()
	c := &clock{now: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)}
	logger := testlogger.New()

	svc := service.New(st.Licenses(), st.Devices(), st.Audits(), logger, service.WithClock(c.Now))

	return &env{svc: svc, store: st, clock: c, logger: logger}
}

func (e *env) validate(key, fingerprint string) model.ValidationResult {
	return e.svc.ValidateLicense(context.Background(), model.ValidateRequest{
		LicenseKey:        key,
		DeviceFingerprint: fingerprint,
		IPAddress:         "203.0.113.7",
	})
}

func (e *env) deviceCount(t *testing.T, licenseID uuid.UUID) int {
	t.Helper()

	devices, err := e.store.Devices().ListByLicense(context.Background(), licenseID)
	require.NoError(t, err)

	return len(devices)
}

func TestDeviceLimitScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	expiry := e.clock.Now().Add(365 * 24 * time.Hour)
	license, err := e.svc.GenerateLicense(ctx, "user-1", &expiry)
	require.NoError(t, err)
	assert.Equal(t, model.LicenseStatusActive, license.Status)
	assert.Equal(t, 3, license.MaxDevices)

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-A"), model.LicenseStatusActive)

	e.clock.Advance(5 * time.Minute)
	result := e.validate(license.LicenseKey, "dev-A")
	helper.AssertValid(t, result, model.LicenseStatusActive)
	assert.True(t, expiry.Equal(*result.License.ExpiresAt))
	assert.Equal(t, 3, result.License.MaxDevices)
	assert.Equal(t, 1, e.deviceCount(t, license.ID), "revalidating a known device must not add a row")

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-B"), model.LicenseStatusActive)
	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-C"), model.LicenseStatusActive)
	assert.Equal(t, 3, e.deviceCount(t, license.ID))

	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-D"), model.ReasonMaxDevicesReached, "Maximum number of devices (3) reached")
	assert.Equal(t, 3, e.deviceCount(t, license.ID))

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-B"), model.LicenseStatusActive)
}

func TestRevokedLicenseScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	license, err := e.svc.GenerateLicense(ctx, "user-1", nil)
	require.NoError(t, err)

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-A"), model.LicenseStatusActive)

	require.True(t, e.svc.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusRevoked))

	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-A"), model.ReasonRevoked, "License is revoked")
}

func TestNonActiveStatusWinsOverExpiry(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	future := e.clock.Now().Add(24 * time.Hour)
	license, err := e.svc.GenerateLicense(ctx, "user-1", &future)
	require.NoError(t, err)

	require.True(t, e.svc.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusExpired))

	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-A"), model.ReasonExpired, "License is expired")
	assert.Zero(t, e.deviceCount(t, license.ID))
}

func TestExpiryTransitionsStatusOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	expiry := e.clock.Now().Add(time.Hour)
	license, err := e.svc.GenerateLicense(ctx, "user-1", &expiry)
	require.NoError(t, err)

	e.clock.Advance(2 * time.Hour)

	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-A"), model.ReasonExpired, "License has expired")

	stored, err := e.svc.GetLicense(ctx, license.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LicenseStatusExpired, stored.Status)

	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-A"), model.ReasonExpired, "License is expired")

	logs, err := e.svc.ListAuditLogs(ctx, license.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1, "only the transition writes an audit entry")
	assert.Equal(t, model.AuditEventStatusChange, logs[0].EventType)
	assert.Equal(t, "expired", logs[0].Details["new_status"])
}

func TestValidateLicense_UnknownKeyAndMalformed(t *testing.T) {
	e := newEnv(t)

	helper.AssertInvalid(t, e.validate("NOPE-NOPE", "dev-A"), model.ReasonNotFound, "Invalid license key")
	helper.AssertInvalid(t, e.validate("", "dev-A"), model.ReasonInvalidRequest, "License key and device fingerprint are required")
	helper.AssertInvalid(t, e.validate("KEY", " "), model.ReasonInvalidRequest, "")
}

func TestValidateLicense_WritesValidationAudit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	license, err := e.svc.GenerateLicense(ctx, "user-1", nil)
	require.NoError(t, err)

	logs, err := e.svc.ListAuditLogs(ctx, license.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs, "creation is not audited")

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-A"), model.LicenseStatusActive)

	logs, err = e.svc.ListAuditLogs(ctx, license.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditEventValidation, logs[0].EventType)
	assert.Equal(t, "dev-A", logs[0].Details["device_fingerprint"])
	assert.Equal(t, "203.0.113.7", logs[0].Details["ip_address"])

	for _, entry := range e.logger.GetEntries() {
		assert.NotContains(t, entry.Message, license.LicenseKey)
	}
}

func TestUpdateLicenseStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	license, err := e.svc.GenerateLicense(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.False(t, e.svc.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatus("suspended")))
	assert.False(t, e.svc.UpdateLicenseStatus(ctx, uuid.New(), model.LicenseStatusRevoked))

	assert.True(t, e.svc.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusRevoked))
	assert.True(t, e.svc.UpdateLicenseStatus(ctx, license.ID, model.LicenseStatusActive), "any enum value may follow any other")

	logs, err := e.svc.ListAuditLogs(ctx, license.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "active", logs[0].Details["new_status"])
	assert.Equal(t, "revoked", logs[1].Details["new_status"])
}

func TestRevokeDevice_FreesSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	license, err := e.svc.GenerateLicense(ctx, "user-1", nil, service.WithMaxDevices(1))
	require.NoError(t, err)

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-A"), model.LicenseStatusActive)
	helper.AssertInvalid(t, e.validate(license.LicenseKey, "dev-B"), model.ReasonMaxDevicesReached, "Maximum number of devices (1) reached")

	devices, err := e.svc.ListDevices(ctx, license.ID)
	require.NoError(t, err)
	require.Len(t, devices, 1)

	assert.True(t, e.svc.RevokeDevice(ctx, devices[0].ID))
	assert.False(t, e.svc.RevokeDevice(ctx, devices[0].ID), "second revoke finds nothing")

	helper.AssertValid(t, e.validate(license.LicenseKey, "dev-B"), model.LicenseStatusActive)

	logs, err := e.svc.ListAuditLogs(ctx, license.ID, 10, 0)
	require.NoError(t, err)

	var revoked []*model.AuditLogEntry
	for _, l := range logs {
		if l.EventType == model.AuditEventDeviceRevoked {
			revoked = append(revoked, l)
		}
	}

	require.Len(t, revoked, 1)
	assert.Equal(t, license.ID, revoked[0].LicenseID)
	assert.Equal(t, devices[0].ID.String(), revoked[0].Details["device_id"])
}

func TestGenerateLicense_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.GenerateLicense(ctx, "  ", nil)
	var vErr pkg.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, constant.ErrMissingUserID.Error(), vErr.Code)

	_, err = e.svc.GenerateLicense(ctx, "user-1", nil, service.WithMaxDevices(0))
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, constant.ErrInvalidMaxDevices.Error(), vErr.Code)

	license, err := e.svc.GenerateLicense(ctx, "user-1", nil, service.WithMetadata(map[string]any{"plan": "pro"}))
	require.NoError(t, err)
	assert.Equal(t, "pro", license.Metadata["plan"])
	assert.Nil(t, license.ExpiresAt)
}

func TestGenerateLicense_KeyGenerationFailureIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	licenses := mocks.NewMockLicenseRepository(ctrl)

	calls := 0
	svc := service.New(licenses, mocks.NewMockDeviceRepository(ctrl), mocks.NewMockAuditRepository(ctrl), testlogger.New(),
		service.WithKeyGenerator(pkg.KeyGeneratorFunc(func() (string, error) {
			calls++
			return "", errors.New("entropy exhausted")
		})))

	_, err := svc.GenerateLicense(context.Background(), "user-1", nil)

	var iErr pkg.InternalServerError
	require.ErrorAs(t, err, &iErr)
	assert.Equal(t, constant.ErrKeyGeneration.Error(), iErr.Code)
	assert.Equal(t, 1, calls)
}

func TestGenerateLicense_DuplicateKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	licenses := mocks.NewMockLicenseRepository(ctrl)
	licenses.EXPECT().Create(gomock.Any(), gomock.Any()).Return(constant.ErrDuplicateLicenseKey)

	svc := service.New(licenses, mocks.NewMockDeviceRepository(ctrl), mocks.NewMockAuditRepository(ctrl), testlogger.New())

	_, err := svc.GenerateLicense(context.Background(), "user-1", nil)

	var cErr pkg.EntityConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestValidateLicense_StorageFailures(t *testing.T) {
	license := &model.License{ID: uuid.New(), LicenseKey: "KEY-1234567", Status: model.LicenseStatusActive, MaxDevices: 3}

	tests := []struct {
		name  string
		setup func(l *mocks.MockLicenseRepository, d *mocks.MockDeviceRepository)
	}{
		{
			name: "license lookup fails",
			setup: func(l *mocks.MockLicenseRepository, _ *mocks.MockDeviceRepository) {
				l.EXPECT().FindByKey(gomock.Any(), license.LicenseKey).Return(nil, errors.New("connection reset by peer"))
			},
		},
		{
			name: "device registration fails",
			setup: func(l *mocks.MockLicenseRepository, d *mocks.MockDeviceRepository) {
				l.EXPECT().FindByKey(gomock.Any(), license.LicenseKey).Return(license, nil)
				d.EXPECT().RegisterDevice(gomock.Any(), gomock.Any(), 3).Return(model.DeviceOutcome(""), errors.New("deadlock detected"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			l := mocks.NewMockLicenseRepository(ctrl)
			d := mocks.NewMockDeviceRepository(ctrl)
			a := mocks.NewMockAuditRepository(ctrl)
			tt.setup(l, d)

			logger := testlogger.New()
			svc := service.New(l, d, a, logger)

			result := svc.ValidateLicense(context.Background(), model.ValidateRequest{LicenseKey: license.LicenseKey, DeviceFingerprint: "dev-A"})

			helper.AssertInvalid(t, result, model.ReasonInternalError, "Error validating license")
			assert.Equal(t, 1, logger.Count("ERROR"))
		})
	}
}

func TestValidateLicense_AuditFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLicenseRepository(ctrl)
	d := mocks.NewMockDeviceRepository(ctrl)
	a := mocks.NewMockAuditRepository(ctrl)

	license := &model.License{ID: uuid.New(), LicenseKey: "KEY-1234567", Status: model.LicenseStatusActive, MaxDevices: 3}

	l.EXPECT().FindByKey(gomock.Any(), license.LicenseKey).Return(license, nil)
	d.EXPECT().RegisterDevice(gomock.Any(), gomock.Any(), 3).
		DoAndReturn(func(_ context.Context, reg *model.DeviceRegistration, _ int) (model.DeviceOutcome, error) {
			assert.Equal(t, license.ID, reg.LicenseID)
			assert.Equal(t, "dev-A", reg.DeviceFingerprint)
			assert.Equal(t, "198.51.100.4", reg.IPAddress)

			return model.DeviceRegistered, nil
		})
	a.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("audit table unavailable"))

	logger := testlogger.New()
	svc := service.New(l, d, a, logger)

	result := svc.ValidateLicense(context.Background(), model.ValidateRequest{
		LicenseKey:        license.LicenseKey,
		DeviceFingerprint: "dev-A",
		IPAddress:         "198.51.100.4",
	})

	helper.AssertValid(t, result, model.LicenseStatusActive)
	assert.True(t, logger.Contains("WARN", "audit table unavailable"))
}

func TestUpdateLicenseStatus_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockLicenseRepository(ctrl)
	id := uuid.New()

	l.EXPECT().UpdateStatus(gomock.Any(), id, model.LicenseStatusRevoked).Return(errors.New("read-only transaction"))

	svc := service.New(l, mocks.NewMockDeviceRepository(ctrl), mocks.NewMockAuditRepository(ctrl), testlogger.New())

	assert.False(t, svc.UpdateLicenseStatus(context.Background(), id, model.LicenseStatusRevoked))
}

func TestRemoveDevice_DistinguishesMissingFromStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mocks.NewMockDeviceRepository(ctrl)
	logger := testlogger.New()
	missing, broken := uuid.New(), uuid.New()

	d.EXPECT().Delete(gomock.Any(), missing).Return(nil, constant.ErrDeviceNotFound)
	d.EXPECT().Delete(gomock.Any(), broken).Return(nil, errors.New("connection reset by peer"))

	svc := service.New(mocks.NewMockLicenseRepository(ctrl), d, mocks.NewMockAuditRepository(ctrl), logger)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, svc.RemoveDevice(context.Background(), missing), &notFound)
	assert.Equal(t, constant.ErrDeviceNotFound.Error(), notFound.Code)

	var internal pkg.InternalServerError
	require.ErrorAs(t, svc.RemoveDevice(context.Background(), broken), &internal)
	assert.True(t, logger.Contains("ERROR", "Failed to revoke device", "connection reset by peer"))
}

func TestExpireLapsedLicenses(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	soon := e.clock.Now().Add(time.Hour)
	later := e.clock.Now().Add(48 * time.Hour)

	lapsing, err := e.svc.GenerateLicense(ctx, "user-1", &soon)
	require.NoError(t, err)
	_, err = e.svc.GenerateLicense(ctx, "user-2", &later)
	require.NoError(t, err)
	_, err = e.svc.GenerateLicense(ctx, "user-3", nil)
	require.NoError(t, err)

	e.clock.Advance(2 * time.Hour)

	n, err := e.svc.ExpireLapsedLicenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := e.svc.GetLicense(ctx, lapsing.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LicenseStatusExpired, stored.Status)

	n, err = e.svc.ExpireLapsedLicenses(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReads(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.GenerateLicense(ctx, "user-1", nil)
	require.NoError(t, err)
	_, err = e.svc.GenerateLicense(ctx, "user-2", nil)
	require.NoError(t, err)

	mine, err := e.svc.ListLicenses(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := e.svc.ListLicenses(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = e.svc.GetLicense(ctx, uuid.New())
	var nfErr pkg.EntityNotFoundError
	require.ErrorAs(t, err, &nfErr)

	_, err = e.svc.ListDevices(ctx, uuid.New())
	require.ErrorAs(t, err, &nfErr)

	_, err = e.svc.ListAuditLogs(ctx, uuid.New(), 10, 0)
	require.ErrorAs(t, err, &nfErr)
}
