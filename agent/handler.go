package agent

import (
	"encoding/json"
	"net/http"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/recording"
	"github.com/LerianStudio/lib-device-license-go/middleware"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	pkgHTTP "github.com/LerianStudio/lib-device-license-go/pkg/net/http"
	"github.com/LerianStudio/lib-device-license-go/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ActivateInput is the body of POST /activate.
type ActivateInput struct {
	LicenseKey string `json:"licenseKey" validate:"required"`
}

// Handler is the local command API of an installation.
type Handler struct {
	client   *validation.Client
	license  *middleware.LicenseClient
	session  *recording.Session
	validate *validator.Validate
	logger   log.Logger
}

// NewHandler builds the handler. The recording session is gated by client.
func NewHandler(client *validation.Client, maxEvents int, logger log.Logger) *Handler {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	return &Handler{
		client:   client,
		license:  middleware.NewLicenseClient(client),
		session:  recording.NewSession(client, maxEvents, logger),
		validate: pkg.NewValidator(),
		logger:   logger,
	}
}

// Register mounts the agent routes on app.
// Starting a recording and appending to it require a valid license; stopping and resetting do not.
func (h *Handler) Register(app *fiber.App) {
	gate := h.license.Middleware()

	app.Post("/activate", h.Activate)
	app.Get("/status", h.CheckStatus)
	app.Get("/license", h.License)

	rec := app.Group("/recording")
	rec.Post("/start", gate, h.StartRecording)
	rec.Post("/events", gate, h.AppendEvents)
	rec.Post("/stop", h.StopRecording)
	rec.Post("/reset", h.ResetRecording)
}

// App returns a fiber application serving the agent routes.
func (h *Handler) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h.Register(app)

	return app
}

// Session exposes the recording session.
func (h *Handler) Session() *recording.Session {
	return h.session
}

// Activate binds this installation to a license key.
func (h *Handler) Activate(c *fiber.Ctx) error {
	var in ActivateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return pkgHTTP.WithError(c, pkg.ValidateBusinessError(cn.ErrInvalidRequestBody, "Activation"))
	}

	if err := h.validate.Struct(in); err != nil {
		return pkgHTTP.WithError(c, pkg.ValidateBadRequestFieldsError(err, "Activation"))
	}

	if err := h.client.Activate(c.UserContext(), in.LicenseKey); err != nil {
		h.logger.Errorf("Activation failed: %v", err)
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(h.client.Status(c.UserContext()))
}

// CheckStatus returns the local license check.
func (h *Handler) CheckStatus(c *fiber.Ctx) error {
	return c.JSON(h.client.CheckStatus(c.UserContext()))
}

// License returns the activation snapshot.
func (h *Handler) License(c *fiber.Ctx) error {
	return c.JSON(h.client.Status(c.UserContext()))
}

// StartRecording starts a recording.
func (h *Handler) StartRecording(c *fiber.Ctx) error {
	if err := h.session.Start(c.UserContext()); err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(fiber.Map{"recording": true})
}

// AppendEvents adds captured events to the running recording.
func (h *Handler) AppendEvents(c *fiber.Ctx) error {
	var events []recording.Event
	if err := json.Unmarshal(c.Body(), &events); err != nil {
		return pkgHTTP.WithError(c, pkg.ValidateBusinessError(cn.ErrInvalidRequestBody, "Recording"))
	}

	if err := h.session.Append(events...); err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.SendStatus(http.StatusAccepted)
}

// StopRecording stops the recording and reports how many events were captured.
func (h *Handler) StopRecording(c *fiber.Ctx) error {
	n, err := h.session.Stop()
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(fiber.Map{"recording": false, "dataLength": n})
}

// ResetRecording drops the recording buffer.
func (h *Handler) ResetRecording(c *fiber.Ctx) error {
	h.session.Reset()
	return c.SendStatus(http.StatusNoContent)
}

// Discard ends any running recording and drops its events.
func (h *Handler) Discard() {
	if n, err := h.session.Stop(); err == nil {
		h.logger.Warnf("Discarding running recording with %d events", n)
	}

	h.session.Reset()
}
