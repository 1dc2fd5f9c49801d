package helper

import (
	"testing"

	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertValid checks that result is Valid and carries a snapshot with the given status.
func AssertValid(t *testing.T, result model.ValidationResult, expectedStatus model.LicenseStatus) {
	t.Helper()

	require.True(t, result.Valid, "expected a valid result, got reason %q (%s)", result.Reason, result.Message)
	require.NotNil(t, result.License, "valid result must carry a license snapshot")
	assert.Equal(t, expectedStatus, result.License.Status, "license status mismatch")
}

// AssertInvalid checks that result is Invalid with the expected reason and message.
// An empty expectedMessage skips the message comparison.
func AssertInvalid(t *testing.T, result model.ValidationResult, expectedReason model.Reason, expectedMessage string) {
	t.Helper()

	require.False(t, result.Valid, "expected an invalid result")
	assert.Nil(t, result.License, "invalid result must not carry a license snapshot")
	assert.Equal(t, expectedReason, result.Reason, "reason mismatch")

	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, result.Message, "message mismatch")
	}
}
