package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// "me" is the profile self-view path segment and cannot be a username.
	v.RegisterValidation("not_me", validateNotMe)

	return &Validator{validate: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateNotMe(fl validator.FieldLevel) bool {
	return !strings.EqualFold(fl.Field().String(), "me")
}

// FieldErrors flattens a validation error into field-keyed messages.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["detail"] = err.Error()
		return fields
	}

	for _, fe := range validationErrors {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			fields[name] = fmt.Sprintf("must be at most %s", fe.Param())
		case "not_me":
			fields[name] = `username "me" is not allowed`
		default:
			fields[name] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return fields
}
