package middleware

import (
	"context"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/internal/shutdown"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/validation"
)

// LicenseClient is the public client API that exposes middleware functionality.
// It wraps the validation client of the installation.
type LicenseClient struct {
	validator *validation.Client
	// initOnce guards startup so that several middlewares share one background refresh
	initOnce sync.Once
}

// NewLicenseClient wraps validator. It returns nil when validator is nil.
func NewLicenseClient(validator *validation.Client) *LicenseClient {
	if validator == nil {
		return nil
	}

	return &LicenseClient{validator: validator}
}

// StartupValidation initializes the activation record, logs the local license
// state and resumes the background refresh when the installation is activated.
// Only the first call has an effect.
func (c *LicenseClient) StartupValidation(ctx context.Context) {
	if c == nil || c.validator == nil {
		return
	}

	c.initOnce.Do(func() {
		l := c.validator.GetLogger()

		if err := c.validator.Initialize(ctx); err != nil {
			l.Errorf("License client initialization failed: %v", err)
			return
		}

		res := c.validator.CheckStatus(ctx)
		c.logLicenseStatus(res)

		c.validator.StartBackgroundRefresh(context.WithoutCancel(ctx))
	})
}

// SetTerminationHandler sets the handler invoked when the license is forcibly deactivated.
func (c *LicenseClient) SetTerminationHandler(handler shutdown.Handler) {
	if c != nil && c.validator != nil {
		c.validator.SetDeactivationHandler(handler)
	}
}

// ShutdownBackgroundRefresh stops the periodic revalidation.
func (c *LicenseClient) ShutdownBackgroundRefresh() {
	if c != nil && c.validator != nil {
		c.validator.ShutdownBackgroundRefresh()
	}
}

// GetLogger returns the logger of the wrapped validation client.
func (c *LicenseClient) GetLogger() log.Logger {
	if c != nil && c.validator != nil {
		return c.validator.GetLogger()
	}

	return nil
}

// Validator exposes the wrapped validation client.
func (c *LicenseClient) Validator() *validation.Client {
	if c == nil {
		return nil
	}

	return c.validator
}

func (c *LicenseClient) logLicenseStatus(res model.CheckResult) {
	l := c.validator.GetLogger()

	switch {
	case res.Valid:
		l.Infof("License is valid")
	case res.Reason == model.ReasonNotActivated:
		l.Warnf("LICENSE: this installation is not activated - licensed features are disabled until a key is activated")
	default:
		l.Errorf("LICENSE: license is not valid (%s) - licensed features will be denied", res.Reason)
	}
}
