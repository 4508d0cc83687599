// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps a validator.Validate instance for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// New creates the validator used by the echo server.
func New() echo.Validator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks the struct tags of a bound request payload. Failures are
// reported as a 400 with the validator's description; the description names
// fields of the request, never stored account data.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
