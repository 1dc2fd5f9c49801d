package server

import (
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the public, admin and operational routes on app.
func (s *Server) Register(app *fiber.App) {
	app.Get("/health", s.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	app.Post(constant.ValidatePath, s.RateLimit(), s.Validate)

	// admin middleware is attached per route so it never runs for the validation endpoint
	auth := s.RequireAdmin()
	v1 := app.Group("/v1")
	v1.Post("/licenses", auth, s.CreateLicense)
	v1.Get("/licenses", auth, s.ListLicenses)
	v1.Get("/licenses/:id", auth, s.GetLicense)
	v1.Patch("/licenses/:id/status", auth, s.UpdateLicenseStatus)
	v1.Get("/licenses/:id/devices", auth, s.ListDevices)
	v1.Get("/licenses/:id/audit-logs", auth, s.ListAuditLogs)
	v1.Delete("/devices/:id", auth, s.RevokeDevice)
}

// Health reports liveness.
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
