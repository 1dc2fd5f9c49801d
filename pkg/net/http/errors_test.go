package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", pkg.ValidateBusinessError(cn.ErrLicenseNotFound, "License"), http.StatusNotFound},
		{"validation", pkg.ValidateBusinessError(cn.ErrMissingUserID, "License"), http.StatusBadRequest},
		{"conflict", pkg.ValidateBusinessError(cn.ErrDuplicateLicenseKey, "License"), http.StatusConflict},
		{"unauthorized", pkg.ValidateBusinessError(cn.ErrUnauthorizedAdmin, ""), http.StatusUnauthorized},
		{"forbidden", pkg.ValidateBusinessError(cn.ErrLicenseInvalid, "", "expired"), http.StatusForbidden},
		{"unprocessable", pkg.ValidateBusinessError(cn.ErrNotRecording, ""), http.StatusUnprocessableEntity},
		{"precondition", pkg.ValidateBusinessError(cn.ErrNotActivated, ""), http.StatusUnprocessableEntity},
		{"rate limited", pkg.ValidateBusinessError(cn.ErrRateLimited, ""), http.StatusTooManyRequests},
		{"key generation", pkg.ValidateBusinessError(cn.ErrKeyGeneration, "License"), http.StatusInternalServerError},
		{"known fields", pkg.ValidationKnownFieldsError{Code: cn.ErrInvalidRequestBody.Error(), Fields: pkg.FieldValidations{"status": "status is required"}}, http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return WithError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
