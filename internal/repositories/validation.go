package repositories

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the "workdir" tag: a value usable as a single directory name.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("workdir", func(fl validator.FieldLevel) bool {
		return IsValidName(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register workdir validation: %w", err)
	}

	return nil
}

// IsValidName reports whether name can be used as a working copy directory name.
func IsValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, "/\\\x00")
}
