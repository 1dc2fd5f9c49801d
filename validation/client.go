package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/api"
	"github.com/LerianStudio/lib-device-license-go/internal/cache"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/internal/refresh"
	"github.com/LerianStudio/lib-device-license-go/internal/shutdown"
	"github.com/LerianStudio/lib-device-license-go/internal/store"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
)

//go:generate mockgen -destination=../test/mocks/remote_validator.go -package=mocks . RemoteValidator

// RemoteValidator submits a license key and device fingerprint to the license backend.
// A returned error means no answer was obtained; an Invalid result is an answer.
type RemoteValidator interface {
	Validate(ctx context.Context, licenseKey, deviceFingerprint string) (model.ValidationResult, error)
}

// State is the lifecycle position of the installation's activation.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInactive      State = "inactive"
	StateActive        State = "active"
	StateGrace         State = "grace"
	StateRevoked       State = "revoked"
)

// Client is the per-installation validation cache: it activates a license,
// answers local status checks and revalidates on a timer.
type Client struct {
	config          config.ClientConfig
	remote          RemoteValidator
	store           store.RecordStore
	cacheManager    *cache.Manager
	refreshManager  *refresh.Manager
	shutdownManager *shutdown.Manager
	logger          log.Logger
	now             func() time.Time
	newDeviceID     func() (string, error)

	// serializes read-modify-write of the activation record
	mu sync.Mutex
}

// Option customizes a Client.
type Option func(*Client)

// WithClock replaces the wall clock used for grace-period and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDeviceIDGenerator replaces the generator used on first initialization.
func WithDeviceIDGenerator(gen func() (string, error)) Option {
	return func(c *Client) {
		if gen != nil {
			c.newDeviceID = gen
		}
	}
}

// New creates a new license validation client.
// A nil remote uses the HTTP validator against cfg.ValidationURL; a nil logger uses zap.
func New(cfg config.ClientConfig, remote RemoteValidator, recordStore store.RecordStore, logger log.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	if err := cfg.Validate(); err != nil {
		logger.Errorf("Invalid configuration: %s", err.Error())
		return nil, err
	}

	if recordStore == nil {
		return nil, errors.New("record store is required")
	}

	if remote == nil {
		remote = api.New(&cfg, nil, logger)
	}

	cacheManager, err := cache.New(logger)
	if err != nil {
		logger.Errorf("Failed to initialize cache: %s", err.Error())
		return nil, err
	}

	client := &Client{
		config:          cfg,
		remote:          remote,
		store:           recordStore,
		cacheManager:    cacheManager,
		shutdownManager: shutdown.New(logger),
		logger:          logger,
		now:             time.Now,
		newDeviceID:     pkg.NewDeviceID,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.refreshManager = refresh.New(client, cfg.RevalidationInterval, logger)

	return client, nil
}

// SetDeactivationHandler registers a callback invoked when repeated revalidation
// failures deactivate this installation.
func (c *Client) SetDeactivationHandler(handler shutdown.Handler) {
	c.shutdownManager.SetHandler(handler)
}

// GetLogger returns the logger used by the client
func (c *Client) GetLogger() log.Logger {
	return c.logger
}

// Initialize creates the activation record on first run. It is idempotent.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.load(ctx)
	if err != nil {
		return err
	}

	if rec != nil && rec.DeviceID != "" {
		return nil
	}

	if rec == nil {
		rec = &model.ActivationRecord{}
	}

	deviceID, err := c.newDeviceID()
	if err != nil {
		return pkg.ValidateInternalError(err, "ActivationRecord")
	}

	rec.DeviceID = deviceID

	if err := c.save(ctx, rec); err != nil {
		return err
	}

	c.logger.Infof("Installation initialized with device %s", deviceID)

	return nil
}

// Activate validates key against the backend and, on success, activates this
// installation and starts the revalidation timer.
func (c *Client) Activate(ctx context.Context, licenseKey string) error {
	licenseKey = strings.TrimSpace(licenseKey)
	if len(licenseKey) < cn.MinLicenseKeyLength {
		return pkg.ValidateBusinessError(cn.ErrInvalidLicenseKey, "ActivationRecord")
	}

	if err := c.Initialize(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.load(ctx)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.HTTPTimeout)
	defer cancel()

	result, err := c.remote.Validate(callCtx, licenseKey, rec.DeviceID)
	if err != nil {
		c.logger.Warnf("License activation failed for key %s: %v", keyRef(licenseKey), err)
		return fmt.Errorf("license activation failed: %w", err)
	}

	if !result.Valid {
		c.logger.Warnf("License activation rejected for key %s: %s", keyRef(licenseKey), result.Reason)
		return pkg.ValidateBusinessError(cn.ErrActivationRejected, "ActivationRecord", rejectionMessage(result))
	}

	now := c.now()
	rec.Activated = true
	rec.LicenseKey = licenseKey
	rec.LastValidation = &now
	rec.ActivatedAt = &now
	rec.FailureCount = 0
	rec.ExpiresAt = nil
	rec.MaxDevices = 0
	applySnapshot(rec, result.License)

	if err := c.save(ctx, rec); err != nil {
		return err
	}

	c.logger.Infof("License %s activated on device %s", keyRef(licenseKey), rec.DeviceID)

	c.refreshManager.Start(context.WithoutCancel(ctx))

	return nil
}

// CheckStatus answers from the local record only. Checks run in order:
// activation, cached status, cached expiry, grace period.
func (c *Client) CheckStatus(ctx context.Context) model.CheckResult {
	rec, err := c.load(ctx)
	if err != nil {
		c.logger.Errorf("Failed to read activation record: %v", err)
		return model.CheckResult{Valid: false, Reason: model.ReasonNotActivated}
	}

	return c.evaluate(rec)
}

func (c *Client) evaluate(rec *model.ActivationRecord) model.CheckResult {
	if rec == nil || !rec.Activated || rec.LicenseKey == "" {
		return model.CheckResult{Valid: false, Reason: model.ReasonNotActivated}
	}

	if rec.Status != model.LicenseStatusActive {
		return model.CheckResult{Valid: false, Reason: model.Reason("license_" + string(rec.Status))}
	}

	now := c.now()

	if rec.ExpiresAt != nil && now.After(*rec.ExpiresAt) {
		return model.CheckResult{Valid: false, Reason: model.ReasonExpired}
	}

	if rec.LastValidation == nil || now.Sub(*rec.LastValidation) > c.config.GracePeriod {
		return model.CheckResult{Valid: false, Reason: model.ReasonGracePeriodExpired}
	}

	return model.CheckResult{Valid: true}
}

// Revalidate re-checks the activated key with the backend. Any failure, whether
// no answer or an invalid answer, counts toward the deactivation threshold.
func (c *Client) Revalidate(ctx context.Context) error {
	c.mu.Lock()

	rec, err := c.load(ctx)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	if rec == nil || !rec.Activated || rec.LicenseKey == "" {
		c.mu.Unlock()
		return pkg.ValidateBusinessError(cn.ErrNotActivated, "ActivationRecord")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.HTTPTimeout)
	result, callErr := c.remote.Validate(callCtx, rec.LicenseKey, rec.DeviceID)

	cancel()

	if callErr == nil && result.Valid {
		now := c.now()
		rec.LastValidation = &now
		rec.FailureCount = 0
		applySnapshot(rec, result.License)

		err := c.save(ctx, rec)

		c.mu.Unlock()

		if err == nil {
			c.logger.Debugf("License %s revalidated", keyRef(rec.LicenseKey))
		}

		return err
	}

	if callErr == nil {
		callErr = fmt.Errorf("license is no longer valid: %s", rejectionMessage(result))
	}

	rec.FailureCount++
	deactivated := rec.FailureCount >= c.config.FailureThreshold

	if deactivated {
		rec.Activated = false
		rec.Status = model.LicenseStatusRevoked
	}

	saveErr := c.save(ctx, rec)

	c.mu.Unlock()

	if saveErr != nil {
		return errors.Join(callErr, saveErr)
	}

	if !deactivated {
		c.logger.Warnf("License revalidation failed (%d/%d): %v", rec.FailureCount, c.config.FailureThreshold, callErr)
		return callErr
	}

	c.logger.Errorf("License revalidation failed %d times, deactivating: %v", rec.FailureCount, callErr)
	c.refreshManager.Shutdown()
	c.shutdownManager.Terminate(model.ReasonLicenseRevoked)

	return callErr
}

// State reports the lifecycle position derived from the local record.
func (c *Client) State(ctx context.Context) State {
	rec, err := c.load(ctx)
	if err != nil || rec == nil {
		return StateUninitialized
	}

	return c.stateOf(rec)
}

func (c *Client) stateOf(rec *model.ActivationRecord) State {
	if !rec.Activated {
		if rec.Status == model.LicenseStatusRevoked {
			return StateRevoked
		}

		return StateInactive
	}

	if rec.FailureCount > 0 {
		return StateGrace
	}

	if rec.LastValidation != nil && c.now().Sub(*rec.LastValidation) > c.config.RevalidationInterval {
		return StateGrace
	}

	return StateActive
}

// Status returns a read-only view of the activation record.
func (c *Client) Status(ctx context.Context) model.ActivationStatus {
	rec, err := c.load(ctx)
	if err != nil || rec == nil {
		return model.ActivationStatus{MaxDevices: cn.DefaultMaxDevices, State: string(StateUninitialized)}
	}

	maxDevices := rec.MaxDevices
	if maxDevices == 0 {
		maxDevices = cn.DefaultMaxDevices
	}

	return model.ActivationStatus{
		Activated:      rec.Activated,
		LicenseKey:     rec.LicenseKey,
		LastValidation: rec.LastValidation,
		ExpiresAt:      rec.ExpiresAt,
		Status:         rec.Status,
		MaxDevices:     maxDevices,
		State:          string(c.stateOf(rec)),
	}
}

// DeviceID returns the locally generated device fingerprint, or "" before Initialize.
func (c *Client) DeviceID(ctx context.Context) string {
	rec, err := c.load(ctx)
	if err != nil || rec == nil {
		return ""
	}

	return rec.DeviceID
}

// StartBackgroundRefresh resumes the revalidation timer when the installation
// is activated. The first revalidation is due one interval after the last
// successful one, so an overdue record is revalidated right away.
func (c *Client) StartBackgroundRefresh(ctx context.Context) {
	rec, err := c.load(ctx)
	if err != nil || rec == nil || !rec.Activated {
		return
	}

	c.refreshManager.StartAfter(ctx, c.nextRevalidationIn(rec))
}

func (c *Client) nextRevalidationIn(rec *model.ActivationRecord) time.Duration {
	if rec.LastValidation == nil {
		return 0
	}

	remaining := c.config.RevalidationInterval - c.now().Sub(*rec.LastValidation)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// ShutdownBackgroundRefresh stops the background refresh process
func (c *Client) ShutdownBackgroundRefresh() {
	c.refreshManager.Shutdown()
}

// Close stops the refresh timer and releases the cache.
func (c *Client) Close() {
	c.refreshManager.Shutdown()
	c.refreshManager.Wait()
	c.cacheManager.Close()
}

func (c *Client) load(ctx context.Context) (*model.ActivationRecord, error) {
	if rec, found := c.cacheManager.Get(); found {
		return rec, nil
	}

	rec, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if rec != nil {
		c.cacheManager.Store(rec)
	}

	return rec, nil
}

func (c *Client) save(ctx context.Context, rec *model.ActivationRecord) error {
	c.cacheManager.Invalidate()

	if err := c.store.Save(ctx, rec); err != nil {
		c.logger.Errorf("Failed to persist activation record: %v", err)
		return err
	}

	c.cacheManager.Store(rec)

	return nil
}

// applySnapshot copies the license data of a valid answer. A valid answer
// without license data means the license is active.
func applySnapshot(rec *model.ActivationRecord, snap *model.LicenseSnapshot) {
	if snap == nil {
		rec.Status = model.LicenseStatusActive
		return
	}

	rec.ExpiresAt = snap.ExpiresAt
	rec.Status = snap.Status
	rec.MaxDevices = snap.MaxDevices
}

func rejectionMessage(result model.ValidationResult) string {
	if result.Message != "" {
		return result.Message
	}

	if result.Reason != model.ReasonNone {
		return string(result.Reason)
	}

	return "License validation failed"
}

func keyRef(key string) string {
	return commons.HashSHA256(key)[:12]
}
