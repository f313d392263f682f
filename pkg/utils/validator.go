package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string
	Tag   string
}

// RequestValidator plugs go-playground/validator into echo.Context.Validate.
type RequestValidator struct {
	validator *validator.Validate
}

func CreateRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// FieldErrors flattens validator errors; other errors produce nil.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
