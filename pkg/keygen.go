package pkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/LerianStudio/lib-device-license-go/constant"
)

// licenseKeyAlphabet omits characters that are easy to misread (0/O, 1/I/L).
const licenseKeyAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// KeyGenerator produces unique, hard-to-guess license keys.
type KeyGenerator interface {
	Generate() (string, error)
}

// KeyGeneratorFunc adapts a function to KeyGenerator.
type KeyGeneratorFunc func() (string, error)

func (f KeyGeneratorFunc) Generate() (string, error) {
	return f()
}

// RandomKeyGenerator builds keys like XXXXX-XXXXX-XXXXX-XXXXX-XXXXX from crypto/rand.
type RandomKeyGenerator struct{}

// Generate returns a new license key.
func (RandomKeyGenerator) Generate() (string, error) {
	groups := make([]string, 0, constant.LicenseKeyGroups)
	max := big.NewInt(int64(len(licenseKeyAlphabet)))

	for range constant.LicenseKeyGroups {
		var sb strings.Builder

		for range constant.LicenseKeyGroupSize {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", err
			}

			sb.WriteByte(licenseKeyAlphabet[n.Int64()])
		}

		groups = append(groups, sb.String())
	}

	return strings.Join(groups, "-"), nil
}
