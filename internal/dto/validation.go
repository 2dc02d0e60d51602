package dto

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding validators the request DTOs
// rely on. Called once at startup against gin's validator engine.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("accountkind", func(fl validator.FieldLevel) bool {
		return domain.AccountKind(fl.Field().String()).IsValid()
	})
}
