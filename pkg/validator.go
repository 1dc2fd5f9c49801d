package pkg

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a struct validator that reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ValidateBadRequestFieldsError turns a failed struct validation into a
// ValidationKnownFieldsError listing every offending field. Any other error
// yields the generic invalid request body error.
func ValidateBadRequestFieldsError(err error, entityType string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidateBusinessError(constant.ErrInvalidRequestBody, entityType)
	}

	fields := make(FieldValidations, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return ValidationKnownFieldsError{
		EntityType: entityType,
		Code:       constant.ErrInvalidRequestBody.Error(),
		Title:      "Invalid request body",
		Message:    "The request body is malformed or is missing required fields.",
		Fields:     fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "required":
		return fe.Field() + " is required"
	case fe.Param() != "":
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
