package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLicense(t *testing.T, s *Store, maxDevices int) *model.License {
	t.Helper()

	license := &model.License{
		ID:         uuid.New(),
		LicenseKey: uuid.NewString(),
		UserID:     "user-1",
		Status:     model.LicenseStatusActive,
		CreatedAt:  time.Now().UTC(),
		MaxDevices: maxDevices,
	}
	require.NoError(t, s.Licenses().Create(context.Background(), license))

	return license
}

func TestRegisterDevice_ConcurrentNeverExceedsMax(t *testing.T) {
	s := New()
	license := seedLicense(t, s, 3)
	devices := s.Devices()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			outcome, err := devices.RegisterDevice(context.Background(), &model.DeviceRegistration{
				ID:                uuid.New(),
				LicenseID:         license.ID,
				DeviceFingerprint: fmt.Sprintf("dev-%d", i),
				LastVerifiedAt:    time.Now(),
			}, license.MaxDevices)
			assert.NoError(t, err)

			if outcome == model.DeviceRegistered {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, accepted)

	list, err := devices.ListByLicense(context.Background(), license.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRegisterDevice_RefreshDoesNotDuplicate(t *testing.T) {
	s := New()
	license := seedLicense(t, s, 1)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	outcome, err := s.Devices().RegisterDevice(ctx, &model.DeviceRegistration{ID: uuid.New(), LicenseID: license.ID, DeviceFingerprint: "dev-A", LastVerifiedAt: first}, 1)
	require.NoError(t, err)
	assert.Equal(t, model.DeviceRegistered, outcome)

	later := first.Add(5 * time.Minute)
	outcome, err = s.Devices().RegisterDevice(ctx, &model.DeviceRegistration{ID: uuid.New(), LicenseID: license.ID, DeviceFingerprint: "dev-A", LastVerifiedAt: later, IPAddress: "10.0.0.9"}, 1)
	require.NoError(t, err)
	assert.Equal(t, model.DeviceRefreshed, outcome)

	list, err := s.Devices().ListByLicense(ctx, license.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, later.Equal(list[0].LastVerifiedAt))
	assert.Equal(t, "10.0.0.9", list[0].IPAddress)
}

func TestLicenseRepository_Errors(t *testing.T) {
	s := New()
	license := seedLicense(t, s, 3)
	ctx := context.Background()

	dup := *license
	dup.ID = uuid.New()
	assert.ErrorIs(t, s.Licenses().Create(ctx, &dup), constant.ErrDuplicateLicenseKey)

	_, err := s.Licenses().FindByKey(ctx, "missing")
	assert.ErrorIs(t, err, constant.ErrLicenseNotFound)

	assert.ErrorIs(t, s.Licenses().UpdateStatus(ctx, uuid.New(), model.LicenseStatusRevoked), constant.ErrLicenseNotFound)

	_, err = s.Devices().Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, constant.ErrDeviceNotFound)
}

func TestAuditRepository_Paging(t *testing.T) {
	s := New()
	license := seedLicense(t, s, 3)
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, s.Audits().Append(ctx, &model.AuditLogEntry{
			ID:        uuid.New(),
			LicenseID: license.ID,
			EventType: model.AuditEventValidation,
			Details:   map[string]any{"n": i},
		}))
	}

	page, err := s.Audits().ListByLicense(ctx, license.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].Details["n"])
	assert.Equal(t, 2, page[1].Details["n"])

	empty, err := s.Audits().ListByLicense(ctx, license.ID, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
