package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/memstore"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/server"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/LerianStudio/lib-device-license-go/test/helper/testlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "s3cret-admin-token"

type fixture struct {
	app *fiber.App
	svc *service.Service
}

func newFixture(t *testing.T, mutate ...func(*config.ServerConfig)) *fixture {
	t.Helper()

	cfg := config.ServerConfig{
		AdminToken:         adminToken,
		DefaultMaxDevices:  3,
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	st := memstore.New()
	logger := testlogger.New()
	svc := service.New(st.Licenses(), st.Devices(), st.Audits(), logger, service.WithDefaultMaxDevices(cfg.DefaultMaxDevices))

	return &fixture{app: server.New(svc, cfg, nil, logger).App(), svc: svc}
}

func (f *fixture) do(t *testing.T, method, path string, body any, admin bool) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(constant.AdminTokenHeader, adminToken)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func (f *fixture) validate(t *testing.T, key, fingerprint string) (int, model.ValidateResponse) {
	t.Helper()

	resp, raw := f.do(t, http.MethodPost, constant.ValidatePath, model.ValidateRequest{
		LicenseKey:        key,
		DeviceFingerprint: fingerprint,
	}, false)

	var out model.ValidateResponse
	require.NoError(t, json.Unmarshal(raw, &out))

	return resp.StatusCode, out
}

func (f *fixture) issue(t *testing.T, maxDevices int) *model.License {
	t.Helper()

	license, err := f.svc.GenerateLicense(context.Background(), "user-1", nil, service.WithMaxDevices(maxDevices))
	require.NoError(t, err)

	return license
}

func TestValidateEndpoint_StatusCodes(t *testing.T) {
	f := newFixture(t)
	license := f.issue(t, 1)

	status, body := f.validate(t, license.LicenseKey, "device-a")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Valid)
	require.NotNil(t, body.LicenseData)
	assert.Equal(t, model.LicenseStatusActive, body.LicenseData.Status)
	assert.Equal(t, 1, body.LicenseData.MaxDevices)

	status, body = f.validate(t, license.LicenseKey, "device-b")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, body.Valid)
	assert.Equal(t, model.ReasonMaxDevicesReached, body.Reason)
	assert.Equal(t, "Maximum number of devices (1) reached", body.Message)

	status, body = f.validate(t, "NOPE-NOPE-NOPE", "device-a")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, model.ReasonNotFound, body.Reason)
	assert.Equal(t, "Invalid license key", body.Message)
}

func TestValidateEndpoint_MalformedRequests(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing fingerprint", body: map[string]string{"licenseKey": "ABCDE-FGHIJ"}},
		{name: "missing key", body: map[string]string{"deviceFingerprint": "device-a"}},
		{name: "blank fields", body: map[string]string{"licenseKey": "  ", "deviceFingerprint": " "}},
		{name: "not json", body: "{licenseKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := f.do(t, http.MethodPost, constant.ValidatePath, tt.body, false)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out model.ValidateResponse
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.False(t, out.Valid)
			assert.Equal(t, model.ReasonInvalidRequest, out.Reason)
			assert.Equal(t, "License key and device fingerprint are required", out.Message)
		})
	}
}

func TestValidateEndpoint_RateLimited(t *testing.T) {
	f := newFixture(t, func(c *config.ServerConfig) {
		c.RateLimitPerSecond = 0.001
		c.RateLimitBurst = 2
	})
	license := f.issue(t, 3)

	for i := 0; i < 2; i++ {
		status, _ := f.validate(t, license.LicenseKey, "device-a")
		assert.Equal(t, http.StatusOK, status)
	}

	resp, _ := f.do(t, http.MethodPost, constant.ValidatePath, model.ValidateRequest{
		LicenseKey:        license.LicenseKey,
		DeviceFingerprint: "device-a",
	}, false)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAdmin_RequiresToken(t *testing.T) {
	f := newFixture(t)

	resp, raw := f.do(t, http.MethodGet, "/v1/licenses", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), constant.ErrUnauthorizedAdmin.Error())

	f2 := newFixture(t, func(c *config.ServerConfig) { c.AdminToken = "" })
	resp, _ = f2.do(t, http.MethodGet, "/v1/licenses", nil, true)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_LicenseLifecycle(t *testing.T) {
	f := newFixture(t)

	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	resp, raw := f.do(t, http.MethodPost, "/v1/licenses", map[string]any{
		"user_id":     "user-42",
		"expires_at":  expires,
		"max_devices": 2,
		"metadata":    map[string]any{"plan": "pro"},
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created model.License
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "user-42", created.UserID)
	assert.Equal(t, 2, created.MaxDevices)
	assert.Equal(t, model.LicenseStatusActive, created.Status)
	assert.NotEmpty(t, created.LicenseKey)

	status, _ := f.validate(t, created.LicenseKey, "device-a")
	require.Equal(t, http.StatusOK, status)

	resp, raw = f.do(t, http.MethodGet, "/v1/licenses?user_id=user-42", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []model.License
	require.NoError(t, json.Unmarshal(raw, &listed))
	assert.Len(t, listed, 1)

	resp, raw = f.do(t, http.MethodGet, "/v1/licenses/"+created.ID.String()+"/devices", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var devices []model.DeviceRegistration
	require.NoError(t, json.Unmarshal(raw, &devices))
	require.Len(t, devices, 1)

	resp, _ = f.do(t, http.MethodDelete, "/v1/devices/"+devices[0].ID.String(), nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = f.do(t, http.MethodDelete, "/v1/devices/"+devices[0].ID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = f.do(t, http.MethodPatch, "/v1/licenses/"+created.ID.String()+"/status", map[string]string{"status": "revoked"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var updated model.License
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, model.LicenseStatusRevoked, updated.Status)

	status, body := f.validate(t, created.LicenseKey, "device-a")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, model.ReasonRevoked, body.Reason)
	assert.Equal(t, "License is revoked", body.Message)

	resp, raw = f.do(t, http.MethodGet, "/v1/licenses/"+created.ID.String()+"/audit-logs?limit=10", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []model.AuditLogEntry
	require.NoError(t, json.Unmarshal(raw, &entries))

	types := make([]model.AuditEventType, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.EventType)
	}
	assert.ElementsMatch(t, []model.AuditEventType{
		model.AuditEventValidation,
		model.AuditEventDeviceRevoked,
		model.AuditEventStatusChange,
	}, types)
}

func TestAdmin_Errors(t *testing.T) {
	f := newFixture(t)
	license := f.issue(t, 1)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   error
	}{
		{"malformed id", http.MethodGet, "/v1/licenses/not-a-uuid", nil, http.StatusBadRequest, constant.ErrInvalidLicenseID},
		{"unknown license", http.MethodGet, "/v1/licenses/" + uuid.NewString(), nil, http.StatusNotFound, constant.ErrLicenseNotFound},
		{"missing user", http.MethodPost, "/v1/licenses", map[string]any{"user_id": ""}, http.StatusBadRequest, constant.ErrMissingUserID},
		{"zero devices", http.MethodPost, "/v1/licenses", map[string]any{"user_id": "u", "max_devices": 0}, http.StatusBadRequest, constant.ErrInvalidMaxDevices},
		{"bad body", http.MethodPost, "/v1/licenses", "[", http.StatusBadRequest, constant.ErrInvalidRequestBody},
		{"unknown status", http.MethodPatch, "/v1/licenses/" + license.ID.String() + "/status", map[string]string{"status": "paused"}, http.StatusBadRequest, constant.ErrInvalidLicenseStatus},
		{"missing status", http.MethodPatch, "/v1/licenses/" + license.ID.String() + "/status", map[string]string{}, http.StatusBadRequest, constant.ErrInvalidRequestBody},
		{"status of unknown license", http.MethodPatch, "/v1/licenses/" + uuid.NewString() + "/status", map[string]string{"status": "revoked"}, http.StatusNotFound, constant.ErrLicenseNotFound},
		{"unknown device", http.MethodDelete, "/v1/devices/" + uuid.NewString(), nil, http.StatusNotFound, constant.ErrDeviceNotFound},
		{"devices of unknown license", http.MethodGet, "/v1/licenses/" + uuid.NewString() + "/devices", nil, http.StatusNotFound, constant.ErrLicenseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := f.do(t, tt.method, tt.path, tt.body, true)
			assert.Equal(t, tt.status, resp.StatusCode, string(raw))
			assert.Contains(t, string(raw), tt.code.Error())
		})
	}
}

func TestAdmin_MissingStatusListsField(t *testing.T) {
	f := newFixture(t)
	license := f.issue(t, 1)

	resp, raw := f.do(t, http.MethodPatch, "/v1/licenses/"+license.ID.String()+"/status", map[string]string{}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	var body struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, constant.ErrInvalidRequestBody.Error(), body.Code)
	assert.Equal(t, map[string]string{"status": "status is required"}, body.Fields)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)
	license := f.issue(t, 1)

	resp, _ := f.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.validate(t, license.LicenseKey, "device-a")
	f.validate(t, license.LicenseKey, "device-b")
	f.do(t, http.MethodPatch, "/v1/licenses/"+license.ID.String()+"/status", map[string]string{"status": "expired"}, true)

	resp, raw := f.do(t, http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(raw)
	assert.Contains(t, text, `license_validations_total{reason="valid"} 1`)
	assert.Contains(t, text, `license_validations_total{reason="max_devices_reached"} 1`)
	assert.Contains(t, text, `license_admin_operations_total{operation="set_status",result="ok"} 1`)
}
