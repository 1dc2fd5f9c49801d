package server

import (
	"encoding/json"
	"net/http"

	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/gofiber/fiber/v2"
)

const missingFieldsMessage = "License key and device fingerprint are required"

// Validate handles the validation endpoint consumed by installations.
// 200 valid, 400 malformed, 401 rejected by policy, 500 internal failure.
func (s *Server) Validate(c *fiber.Ctx) error {
	var req model.ValidateRequest

	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Debugf("Malformed validation body from %s: %v", c.IP(), err)
		return s.writeResult(c, model.Invalid(model.ReasonInvalidRequest, missingFieldsMessage))
	}

	if err := s.validate.Struct(req); err != nil {
		return s.writeResult(c, model.Invalid(model.ReasonInvalidRequest, missingFieldsMessage))
	}

	req.IPAddress = c.IP()

	return s.writeResult(c, s.svc.ValidateLicense(c.UserContext(), req))
}

func (s *Server) writeResult(c *fiber.Ctx, result model.ValidationResult) error {
	s.metrics.observeValidation(result)

	return c.Status(statusFor(result)).JSON(result.ToResponse())
}

func statusFor(result model.ValidationResult) int {
	switch {
	case result.Valid:
		return http.StatusOK
	case result.Reason == model.ReasonInvalidRequest:
		return http.StatusBadRequest
	case result.Reason == model.ReasonInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}
