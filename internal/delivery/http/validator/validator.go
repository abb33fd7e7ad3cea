// Package validator adapts go-playground validation to echo's Validator
// interface.
package validator

import (
	domainerrors "readreach/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator wraps a shared validate instance; struct tags drive the rules.
type Validator struct {
	validate *playground.Validate
}

// New creates the echo validator used by every handler bind.
func New() *Validator {
	return &Validator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Rule failures surface as the
// validation app error so the error handler maps them to a 400.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
