package shutdown

import (
	"testing"

	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/test/helper/testlogger"
	"github.com/stretchr/testify/assert"
)

func TestTerminate(t *testing.T) {
	logger := testlogger.New()
	m := New(logger)

	m.Terminate(model.ReasonLicenseRevoked)
	assert.True(t, logger.Contains("WARN", "license_revoked"))

	var got model.Reason
	m.SetHandler(func(reason model.Reason) { got = reason })
	m.SetHandler(nil)

	m.Terminate(model.ReasonLicenseRevoked)
	assert.Equal(t, model.ReasonLicenseRevoked, got)
	assert.Equal(t, 2, logger.Count("WARN"))
}
