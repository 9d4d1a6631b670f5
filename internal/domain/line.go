package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LineInput adds merchandise to a cart.
type LineInput struct {
	MerchandiseID string `validate:"required"`
	Quantity      int    `validate:"gt=0"`
}

// LineUpdate sets an existing line's quantity.
type LineUpdate struct {
	ID       string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

func ValidateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	for i, line := range lines {
		if err := validateStruct(line); err != nil {
			return fmt.Errorf("line[%d]: %w", i, err)
		}
	}
	return nil
}

func ValidateLineUpdates(lines []LineUpdate) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	for i, line := range lines {
		if err := validateStruct(line); err != nil {
			return fmt.Errorf("line[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	switch fieldErrs[0].Field() {
	case "MerchandiseID":
		return ErrEmptyMerchandiseID
	case "ID":
		return ErrEmptyLineID
	case "Quantity":
		return fmt.Errorf("%w: got %v", ErrInvalidQuantity, fieldErrs[0].Value())
	}
	return fmt.Errorf("validate.Struct: %w", err)
}
