// Package catalog holds the shared pieces of the recipe, equipment and
// about domain services: the request validator and the structured
// per-field validation error.
package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a per-field error set. No write happens when a
// request fails validation.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidator creates the request validator. Field names in error sets
// use the json tag so they match the wire format.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate runs the validator and converts its error into a ValidationError.
func Validate(v *validator.Validate, request any) error {
	err := v.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = messageFor(fieldError)
	}

	return &ValidationError{Fields: fields}
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + fieldError.Param()
	case "min":
		return "must have at least " + fieldError.Param() + " entry"
	case "max":
		return "must be at most " + fieldError.Param() + " characters"
	default:
		return "is invalid"
	}
}
