package middleware

import (
	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	pkgHTTP "github.com/LerianStudio/lib-device-license-go/pkg/net/http"
	"github.com/gofiber/fiber/v2"
)

// LicenseStateLocal is the fiber local holding the validation state of the request.
const LicenseStateLocal = "licenseState"

// Middleware creates a Fiber middleware that gates routes on the local license check
// and manages background refresh. Rejected requests get 403 with the failure reason.
func (c *LicenseClient) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if c == nil || c.validator == nil {
			return ctx.Next()
		}

		c.StartupValidation(ctx.UserContext())

		res := c.validator.CheckStatus(ctx.UserContext())
		if !res.Valid {
			c.validator.GetLogger().Warnf("Denied %s %s: license check failed (%s)", ctx.Method(), ctx.Path(), res.Reason)
			return pkgHTTP.WithError(ctx, pkg.ValidateBusinessError(cn.ErrLicenseInvalid, "", res.Reason))
		}

		ctx.Locals(LicenseStateLocal, string(c.validator.State(ctx.UserContext())))

		return ctx.Next()
	}
}
