package handler

import (
    "net/http"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so request DTOs can declare constraints as struct tags.
type Validator struct {
    validate *validator.Validate
}

// NewValidator constructs the request validator installed on the Echo
// instance at startup.
func NewValidator() *Validator {
    return &Validator{validate: validator.New()}
}

// Validate checks a bound request struct and converts violations into
// a 400 response.
func (v *Validator) Validate(i interface{}) error {
    if err := v.validate.Struct(i); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, err.Error())
    }
    return nil
}
