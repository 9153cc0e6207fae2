package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/planner-service/pkg/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct validation and converts failures into a
// VALIDATION_FAILED error carrying the offending fields.
func Validate(s any) error {
	details, ok := fieldErrors(s)
	if ok {
		return nil
	}
	return apperrors.NewValidationError("invalid request payload", details)
}

// ValidateForm is Validate for form-encoded payloads, which fail with 422
// rather than 400.
func ValidateForm(s any) error {
	details, ok := fieldErrors(s)
	if ok {
		return nil
	}
	return apperrors.NewUnprocessable("invalid form payload", details)
}

func fieldErrors(s any) (map[string]any, bool) {
	err := validate.Struct(s)
	if err == nil {
		return nil, true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
		return details, false
	}
	return nil, false
}
