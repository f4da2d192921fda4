package deployments

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the `deployment_type` tag. Empty values pass; combine
// with `required` where a type is mandatory.
func RegisterValidations(v *validator.Validate, svc *Service) error {
	err := v.RegisterValidation("deployment_type", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || svc.Exists(value)
	})
	if err != nil {
		return fmt.Errorf("failed to register deployment_type validation: %w", err)
	}

	return nil
}
