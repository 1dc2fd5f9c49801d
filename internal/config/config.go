package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/kelseyhightower/envconfig"
)

// ClientConfig holds the configuration for one installation's license client
type ClientConfig struct {
	ValidationURL string `envconfig:"VALIDATION_URL" default:"https://license.lerian.io/v1/licenses/validate"`

	// HTTP configuration
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`

	// Revalidation policy
	RevalidationInterval time.Duration `envconfig:"REVALIDATION_INTERVAL" default:"12h"`
	GracePeriod          time.Duration `envconfig:"GRACE_PERIOD" default:"72h"`
	FailureThreshold     int           `envconfig:"FAILURE_THRESHOLD" default:"3"`

	// Local persistence and API
	StorePath         string `envconfig:"STORE_PATH" default:"license-agent.db"`
	ListenAddr        string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:4010"`
	MaxRecordedEvents int    `envconfig:"MAX_RECORDED_EVENTS" default:"10000"`
}

// NewDefaultConfig creates a new config with sensible defaults
func NewDefaultConfig() ClientConfig {
	return ClientConfig{
		ValidationURL:        constant.DefaultValidationURL,
		HTTPTimeout:          constant.DefaultHTTPTimeoutSeconds * time.Second,
		RevalidationInterval: constant.DefaultRevalidationIntervalHours * time.Hour,
		GracePeriod:          constant.DefaultGracePeriodHours * time.Hour,
		FailureThreshold:     constant.DefaultFailureThreshold,
		StorePath:            "license-agent.db",
		ListenAddr:           "127.0.0.1:4010",
		MaxRecordedEvents:    constant.MaxRecordedEvents,
	}
}

// LoadClientConfig reads the client configuration from AGENT_* variables.
func LoadClientConfig() (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(constant.AgentEnvPrefix, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("load agent config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid
func (c *ClientConfig) Validate() error {
	if c.ValidationURL == "" {
		return errors.New("validation URL is required")
	}

	if u, err := url.Parse(c.ValidationURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("validation URL %q is not absolute", c.ValidationURL)
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be positive")
	}

	if c.RevalidationInterval <= 0 {
		return errors.New("revalidation interval must be positive")
	}

	if c.GracePeriod <= 0 {
		return errors.New("grace period must be positive")
	}

	if c.FailureThreshold < 1 {
		return errors.New("failure threshold must be at least 1")
	}

	return nil
}

// ServerConfig holds the configuration for the license backend
type ServerConfig struct {
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	AdminToken  string `envconfig:"ADMIN_TOKEN"`

	DefaultMaxDevices int    `envconfig:"DEFAULT_MAX_DEVICES" default:"3"`
	ExpirySweepSpec   string `envconfig:"EXPIRY_SWEEP_SPEC" default:"@every 1h"`

	RateLimitPerSecond float64       `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
	RateLimitBurst     int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoadServerConfig reads the server configuration from LICENSE_* variables.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process(constant.ServerEnvPrefix, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}

	return cfg, nil
}
