package usecase

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ProductInput carries the client-supplied product fields.
// A nil field was absent from the request body.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// trimmedName returns the name without surrounding whitespace, "" when absent.
func (in ProductInput) trimmedName() string {
	if in.Name == nil {
		return ""
	}
	return strings.TrimSpace(*in.Name)
}

// validateForCreate checks the rules for a new product, in order:
// name and price present, then price and stock not negative.
func validateForCreate(in ProductInput) error {
	if err := validation.Validate(in.trimmedName(), validation.Required.Error(ErrMissingNameOrPrice.Message)); err != nil {
		return ErrMissingNameOrPrice
	}
	if err := validation.Validate(in.Price, validation.NotNil.Error(ErrMissingNameOrPrice.Message)); err != nil {
		return ErrMissingNameOrPrice
	}
	return validateRanges(in)
}

// validateRanges checks the fields that are present and ignores absent ones.
func validateRanges(in ProductInput) error {
	if err := validation.Validate(in.Price, validation.By(nonNegativeFloat)); err != nil {
		return ErrNegativePrice
	}
	if err := validation.Validate(in.Stock, validation.By(nonNegativeInt)); err != nil {
		return ErrNegativeStock
	}
	return nil
}

func nonNegativeFloat(value interface{}) error {
	if p, ok := value.(*float64); ok && p != nil && *p < 0 {
		return ErrNegativePrice
	}
	return nil
}

func nonNegativeInt(value interface{}) error {
	if p, ok := value.(*int); ok && p != nil && *p < 0 {
		return ErrNegativeStock
	}
	return nil
}
