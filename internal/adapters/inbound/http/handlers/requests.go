package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/go-playground/validator/v10"
)

type (
	CreateDeviceRequest struct {
		Name  string `json:"name" validate:"required,max=120"`
		Brand string `json:"brand" validate:"required,max=120"`
		State string `json:"state" validate:"required"`
	}

	UpdateDeviceRequest struct {
		Name  string `json:"name" validate:"required,max=120"`
		Brand string `json:"brand" validate:"required,max=120"`
		State string `json:"state" validate:"required"`
	}

	PatchDeviceRequest struct {
		Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
		Brand *string `json:"brand" validate:"omitempty,min=1,max=120"`
		State *string `json:"state" validate:"omitempty"`
	}
)

// IsEmpty reports whether no field at all was supplied.
func (r PatchDeviceRequest) IsEmpty() bool {
	return r.Name == nil && r.Brand == nil && r.State == nil
}

var validate = newValidator()

// newValidator reports offending fields by their JSON names, not the Go
// struct field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// validateRequest runs struct validation and translates failures into the
// domain's field-error collection.
func validateRequest(req any) *model.ValidationErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors := model.NewValidationErrors()

	var fieldErrors validator.ValidationErrors
	if ok := errors.As(err, &fieldErrors); !ok {
		validationErrors.Add("", err.Error(), "invalid")

		return validationErrors
	}

	for _, fe := range fieldErrors {
		validationErrors.Add(fe.Field(), validationMessage(fe), fe.Tag())
	}

	return validationErrors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
