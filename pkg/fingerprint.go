package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/LerianStudio/lib-device-license-go/constant"
)

var deviceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewDeviceID returns 16 random bytes rendered as 32 lowercase hex characters.
func NewDeviceID() (string, error) {
	buf := make([]byte, constant.DeviceIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate device id: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// IsDeviceID reports whether s has the shape produced by NewDeviceID.
func IsDeviceID(s string) bool {
	return deviceIDPattern.MatchString(s)
}
