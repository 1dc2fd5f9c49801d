package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/store"
	"github.com/LerianStudio/lib-device-license-go/middleware"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/test/helper/testlogger"
	"github.com/LerianStudio/lib-device-license-go/test/mocks"
	"github.com/LerianStudio/lib-device-license-go/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testKey = "ABCDE-FGHJK-MNPQR-STUVW-XYZ23"

func newApp(t *testing.T) (*fiber.App, *validation.Client, *mocks.MockRemoteValidator, *testlogger.TestLogger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRemoteValidator(ctrl)
	logger := testlogger.New()

	client, err := validation.New(config.NewDefaultConfig(), remote, store.NewMemoryStore(), logger)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	lc := middleware.NewLicenseClient(client)
	require.NotNil(t, lc)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/open", func(c *fiber.Ctx) error { return c.SendString("open") })
	app.Get("/licensed", lc.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LicenseStateLocal).(string))
	})

	return app, client, remote, logger
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestMiddleware_DeniesUnactivatedInstallation(t *testing.T) {
	app, _, _, logger := newApp(t)

	status, body := get(t, app, "/licensed")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, cn.ErrLicenseInvalid.Error())
	assert.Contains(t, body, "License is not valid: not_activated")
	assert.True(t, logger.Contains("WARN", "not activated"))

	status, _ = get(t, app, "/open")
	assert.Equal(t, http.StatusOK, status)
}

func TestMiddleware_AllowsActivatedInstallation(t *testing.T) {
	app, client, remote, _ := newApp(t)

	remote.EXPECT().
		Validate(gomock.Any(), testKey, gomock.Any()).
		Return(model.Valid(model.LicenseSnapshot{Status: model.LicenseStatusActive, MaxDevices: 3}), nil)

	require.NoError(t, client.Activate(context.Background(), testKey))

	status, body := get(t, app, "/licensed")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "active", body)
}

func TestNewLicenseClient_Nil(t *testing.T) {
	assert.Nil(t, middleware.NewLicenseClient(nil))

	var lc *middleware.LicenseClient
	lc.StartupValidation(context.Background())
	lc.ShutdownBackgroundRefresh()
	assert.Nil(t, lc.GetLogger())
}
