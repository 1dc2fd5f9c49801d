package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	pkgHTTP "github.com/LerianStudio/lib-device-license-go/pkg/net/http"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateLicenseInput is the body of POST /v1/licenses.
type CreateLicenseInput struct {
	UserID     string         `json:"user_id"`
	ExpiresAt  *time.Time     `json:"expires_at"`
	MaxDevices *int           `json:"max_devices"`
	Metadata   map[string]any `json:"metadata"`
}

// UpdateStatusInput is the body of PATCH /v1/licenses/:id/status.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// RequireAdmin rejects requests whose admin token header does not match the configured token.
func (s *Server) RequireAdmin() fiber.Handler {
	expected := []byte(s.cfg.AdminToken)

	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(cn.AdminTokenHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			s.logger.Warnf("Rejected admin request %s %s from %s", c.Method(), c.Path(), c.IP())
			return pkgHTTP.WithError(c, pkg.ValidateBusinessError(cn.ErrUnauthorizedAdmin, ""))
		}

		return c.Next()
	}
}

// CreateLicense issues a license.
func (s *Server) CreateLicense(c *fiber.Ctx) error {
	var in CreateLicenseInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return s.adminError(c, "create", pkg.ValidateBusinessError(cn.ErrInvalidRequestBody, "License"))
	}

	var opts []service.GenerateOption
	if in.MaxDevices != nil {
		opts = append(opts, service.WithMaxDevices(*in.MaxDevices))
	}

	if in.Metadata != nil {
		opts = append(opts, service.WithMetadata(in.Metadata))
	}

	license, err := s.svc.GenerateLicense(c.UserContext(), in.UserID, in.ExpiresAt, opts...)
	if err != nil {
		return s.adminError(c, "create", err)
	}

	s.metrics.observeAdmin("create", nil)

	return c.Status(http.StatusCreated).JSON(license)
}

// ListLicenses lists licenses, optionally filtered by the user_id query parameter.
func (s *Server) ListLicenses(c *fiber.Ctx) error {
	licenses, err := s.svc.ListLicenses(c.UserContext(), c.Query("user_id"))
	if err != nil {
		return s.adminError(c, "list", err)
	}

	return c.JSON(licenses)
}

// GetLicense returns one license.
func (s *Server) GetLicense(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	license, err := s.svc.GetLicense(c.UserContext(), id)
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(license)
}

// UpdateLicenseStatus sets the status of a license.
func (s *Server) UpdateLicenseStatus(c *fiber.Ctx) error {
	const op = "set_status"

	id, err := parseID(c)
	if err != nil {
		return s.adminError(c, op, err)
	}

	var in UpdateStatusInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return s.adminError(c, op, pkg.ValidateBusinessError(cn.ErrInvalidRequestBody, "License"))
	}

	if err := s.validate.Struct(in); err != nil {
		return s.adminError(c, op, pkg.ValidateBadRequestFieldsError(err, "License"))
	}

	status := model.LicenseStatus(in.Status)
	if !status.IsValid() {
		return s.adminError(c, op, pkg.ValidateBusinessError(cn.ErrInvalidLicenseStatus, "License", in.Status))
	}

	if _, err := s.svc.GetLicense(c.UserContext(), id); err != nil {
		return s.adminError(c, op, err)
	}

	if !s.svc.UpdateLicenseStatus(c.UserContext(), id, status) {
		return s.adminError(c, op, pkg.ValidateInternalError(nil, "License"))
	}

	license, err := s.svc.GetLicense(c.UserContext(), id)
	if err != nil {
		return s.adminError(c, op, err)
	}

	s.metrics.observeAdmin(op, nil)

	return c.JSON(license)
}

// RevokeDevice frees a device slot.
func (s *Server) RevokeDevice(c *fiber.Ctx) error {
	const op = "revoke_device"

	id, err := parseID(c)
	if err != nil {
		return s.adminError(c, op, err)
	}

	if err := s.svc.RemoveDevice(c.UserContext(), id); err != nil {
		return s.adminError(c, op, err)
	}

	s.metrics.observeAdmin(op, nil)

	return c.SendStatus(http.StatusNoContent)
}

// ListDevices lists the devices bound to a license.
func (s *Server) ListDevices(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	devices, err := s.svc.ListDevices(c.UserContext(), id)
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(devices)
}

// ListAuditLogs pages through the audit trail of a license (limit, offset query parameters).
func (s *Server) ListAuditLogs(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	entries, err := s.svc.ListAuditLogs(c.UserContext(), id, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return pkgHTTP.WithError(c, err)
	}

	return c.JSON(entries)
}

func (s *Server) adminError(c *fiber.Ctx, operation string, err error) error {
	s.metrics.observeAdmin(operation, err)
	return pkgHTTP.WithError(c, err)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkg.ValidateBusinessError(cn.ErrInvalidLicenseID, "", raw)
	}

	return id, nil
}
