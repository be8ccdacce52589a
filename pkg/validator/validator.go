// Package validator plugs go-playground struct validation into echo.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator holds the shared validate instance echo consults for
// every bound request DTO.
type CustomValidator struct {
	v *validator.Validate
}

// New builds the validator wired into echo.Echo.Validator at startup
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct tags on a bound request
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
