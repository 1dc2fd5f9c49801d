package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	libErr "github.com/LerianStudio/lib-device-license-go/error"
	"github.com/LerianStudio/lib-device-license-go/internal/api"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/test/helper"
	"github.com/LerianStudio/lib-device-license-go/test/helper/testlogger"
	"github.com/LerianStudio/lib-device-license-go/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *api.Client {
	cfg := config.NewDefaultConfig()
	cfg.ValidationURL = url

	return api.New(&cfg, nil, testlogger.New())
}

func TestValidate_SendsRequestAndDecodesValid(t *testing.T) {
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	var ts *helper.TestServer
	ts = helper.NewTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.AssertRequestMethod(t, r, http.MethodPost)
		ts.AssertHeader(t, r, "Content-Type", "application/json")

		var req model.ValidateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ABCDE-FGHJK", req.LicenseKey)
		assert.Equal(t, "device-1", req.DeviceFingerprint)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(model.Valid(model.LicenseSnapshot{
			ExpiresAt:  &expires,
			Status:     model.LicenseStatusActive,
			MaxDevices: 5,
		}).ToResponse())
	}))

	result, err := newClient(ts.URL).Validate(context.Background(), "ABCDE-FGHJK", "device-1")
	require.NoError(t, err)
	helper.AssertValid(t, result, model.LicenseStatusActive)
	assert.Equal(t, 5, result.License.MaxDevices)
	assert.True(t, expires.Equal(*result.License.ExpiresAt))
}

func TestValidate_StatusHandling(t *testing.T) {
	rejected, _ := json.Marshal(model.Invalid(model.ReasonRevoked, "License is revoked").ToResponse())
	validBody, _ := json.Marshal(model.Valid(model.LicenseSnapshot{Status: model.LicenseStatusActive}).ToResponse())

	tests := []struct {
		name       string
		status     int
		body       []byte
		wantReason model.Reason
		wantStatus int
	}{
		{name: "401 is a policy answer", status: http.StatusUnauthorized, body: rejected, wantReason: model.ReasonRevoked},
		{name: "401 with a valid body", status: http.StatusUnauthorized, body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "400", status: http.StatusBadRequest, body: []byte(`{"valid":false}`), wantStatus: http.StatusBadRequest},
		{name: "500", status: http.StatusInternalServerError, body: []byte(`{}`), wantStatus: http.StatusInternalServerError},
		{name: "503 without body", status: http.StatusServiceUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "redirect", status: http.StatusFound, wantStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient("http://license.invalid/v1/licenses/validate")
			client.SetHTTPClient(mocks.HTTPClientWithStatusMock(tt.status, tt.body))

			result, err := client.Validate(context.Background(), "ABCDE-FGHJK", "device-1")
			if tt.wantStatus != 0 {
				var apiErr *libErr.ApiError
				require.True(t, errors.As(err, &apiErr), "got %v", err)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				return
			}

			require.NoError(t, err)
			helper.AssertInvalid(t, result, tt.wantReason, "License is revoked")
		})
	}
}

func TestValidate_TransportFailures(t *testing.T) {
	client := newClient("http://license.invalid/v1/licenses/validate")
	client.SetHTTPClient(mocks.HTTPClientConnectionErrorMock())

	_, err := client.Validate(context.Background(), "ABCDE-FGHJK", "device-1")
	require.Error(t, err)

	client.SetHTTPClient(mocks.HTTPClientWithStatusMock(http.StatusOK, []byte("not json")))

	_, err = client.Validate(context.Background(), "ABCDE-FGHJK", "device-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
