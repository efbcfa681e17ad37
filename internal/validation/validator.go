package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldValidator performs local struct validation when no external
// identity provider is configured. It translates tag failures into field
// errors on a Context.
type FieldValidator struct {
	validate *validator.Validate
}

// New creates a FieldValidator
func New() *FieldValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &FieldValidator{validate: v}
}

// ValidateStruct validates s against its `validate` tags, recording every
// failure as a field error.
func (f *FieldValidator) ValidateStruct(s any, vc *Context) {
	err := f.validate.Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		vc.AddError("", err.Error())
		return
	}

	for _, fe := range verrs {
		vc.AddError(strings.ToLower(fe.Field()), messageFor(fe))
	}
}

// messageFor renders a human-readable message for a tag failure
func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return "does not match"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
