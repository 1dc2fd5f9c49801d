package util

import (
	"errors"
	"fmt"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
)

// ValidateEnvVariables checks the server variables that have no usable default.
func ValidateEnvVariables(cfg *config.ServerConfig, l log.Logger) error {
	if cfg == nil {
		return errors.New("license server config is nil")
	}

	if commons.IsNilOrEmpty(&cfg.AdminToken) {
		err := "missing admin token environment variable"

		l.Error(err)

		return errors.New(err)
	}

	switch cfg.StoreDriver {
	case constant.StoreDriverPostgres:
		if commons.IsNilOrEmpty(&cfg.DatabaseURL) {
			err := "missing database URL environment variable"

			l.Error(err)

			return errors.New(err)
		}
	case constant.StoreDriverMemory:
		l.Warn("using in-memory license store, data will not survive a restart")
	default:
		err := fmt.Sprintf("unknown store driver %q", cfg.StoreDriver)

		l.Error(err)

		return errors.New(err)
	}

	if cfg.DefaultMaxDevices < 1 {
		err := "default max devices must be at least 1"

		l.Error(err)

		return errors.New(err)
	}

	return nil
}
