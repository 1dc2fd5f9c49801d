package http

import (
	"errors"

	"github.com/LerianStudio/lib-commons/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/commons/net/http"
	"github.com/LerianStudio/lib-device-license-go/pkg"
	"github.com/gofiber/fiber/v2"
)

// WithError returns an error with the given status code and message.
func WithError(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case pkg.EntityNotFoundError:
		return commonsHttp.NotFound(c, e.Code, e.Title, e.Message)
	case pkg.EntityConflictError:
		return commonsHttp.Conflict(c, e.Code, e.Title, e.Message)
	case pkg.ValidationError:
		return commonsHttp.BadRequest(c, pkg.ValidationKnownFieldsError{
			Code:    e.Code,
			Title:   e.Title,
			Message: e.Message,
			Fields:  nil,
		})
	case pkg.UnprocessableOperationError:
		return commonsHttp.UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.FailedPreconditionError:
		return commonsHttp.UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.UnauthorizedError:
		return commonsHttp.Unauthorized(c, e.Code, e.Title, e.Message)
	case pkg.ForbiddenError:
		return commonsHttp.Forbidden(c, e.Code, e.Title, e.Message)
	case pkg.HTTPError:
		return c.Status(e.StatusCode).JSON(pkg.ResponseError{Code: e.Code, Title: e.Title, Message: e.Message})
	case pkg.ValidationKnownFieldsError:
		return commonsHttp.BadRequest(c, e)
	case pkg.ResponseError:
		var rErr commons.Response
		_ = errors.As(err, &rErr)

		return commonsHttp.JSONResponseError(c, rErr)
	default:
		var iErr pkg.InternalServerError
		if !errors.As(err, &iErr) {
			_ = errors.As(pkg.ValidateInternalError(err, ""), &iErr)
		}

		return commonsHttp.InternalServerError(c, iErr.Code, iErr.Title, iErr.Message)
	}
}
