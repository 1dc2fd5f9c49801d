package sdk

import (
	"fmt"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/store"
	"github.com/LerianStudio/lib-device-license-go/middleware"
	"github.com/LerianStudio/lib-device-license-go/validation"
)

// Config holds runtime configuration of an installation.
type Config = config.ClientConfig

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return config.NewDefaultConfig()
}

// LoadFromEnv builds the Config from AGENT_* environment variables.
func LoadFromEnv() (Config, error) {
	return config.LoadClientConfig()
}

// Installation bundles the validation client of one installation with its
// persisted record store and fiber middleware.
type Installation struct {
	Client  *validation.Client
	License *middleware.LicenseClient

	store *store.SQLiteStore
}

// Open builds an Installation whose activation record lives in the sqlite file cfg.StorePath.
func Open(cfg Config, logger log.Logger) (*Installation, error) {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := store.NewSQLiteStore(cfg.StorePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open activation store: %w", err)
	}

	client, err := validation.New(cfg, nil, st, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &Installation{
		Client:  client,
		License: middleware.NewLicenseClient(client),
		store:   st,
	}, nil
}

// NewFromEnv is Open with the configuration read from the environment.
func NewFromEnv(logger log.Logger) (*Installation, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	return Open(cfg, logger)
}

// Close stops background work and closes the record store.
func (i *Installation) Close() error {
	i.Client.Close()
	return i.store.Close()
}
