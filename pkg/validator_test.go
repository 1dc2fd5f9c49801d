package pkg

import (
	"errors"
	"testing"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	LicenseKey string `json:"licenseKey" validate:"required"`
	MaxDevices int    `json:"max_devices,omitempty" validate:"gte=1"`
	Internal   string `json:"-" validate:"required"`
}

func TestValidateBadRequestFieldsError(t *testing.T) {
	err := NewValidator().Struct(sampleInput{})
	require.Error(t, err)

	got := ValidateBadRequestFieldsError(err, "Activation")

	var fieldsErr ValidationKnownFieldsError
	require.True(t, errors.As(got, &fieldsErr))
	assert.Equal(t, constant.ErrInvalidRequestBody.Error(), fieldsErr.Code)
	assert.Equal(t, "Activation", fieldsErr.EntityType)
	assert.Equal(t, "licenseKey is required", fieldsErr.Fields["licenseKey"])
	assert.Equal(t, "max_devices failed gte=1", fieldsErr.Fields["max_devices"])
	assert.Equal(t, "Internal is required", fieldsErr.Fields["Internal"])
}

func TestValidateBadRequestFieldsError_OtherErrors(t *testing.T) {
	got := ValidateBadRequestFieldsError(errors.New("boom"), "License")

	var vErr ValidationError
	require.True(t, errors.As(got, &vErr))
	assert.Equal(t, constant.ErrInvalidRequestBody.Error(), vErr.Code)
}
