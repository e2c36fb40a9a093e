package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// validateMediaType accepts "auto", the empty string, or any category the
// protocol knows.
func validateMediaType(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	if value == "" || value == "auto" {
		return true
	}

	_, err := mediacrypt.ParseMediaType(value)

	return err == nil
}
