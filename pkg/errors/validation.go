package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateName validates a component, section or layer name.
//
// Validation rules:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//
// kind is used in the message only ("section", "layer", ...).
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeParameter, "%s name cannot be empty", kind)
	}

	if len(name) > 256 {
		return New(ErrCodeParameter, "%s name too long (max 256 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeParameter, "%s name contains invalid control characters", kind)
		}
	}

	return nil
}

// ValidatePositive checks that v is finite and strictly positive.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeParameter, "%s must be finite, got %v", field, v)
	}
	if v <= 0 {
		return New(ErrCodeParameter, "%s must be positive, got %g", field, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and not negative.
func ValidateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeParameter, "%s must be finite, got %v", field, v)
	}
	if v < 0 {
		return New(ErrCodeParameter, "%s cannot be negative, got %g", field, v)
	}
	return nil
}

// ValidateFinite checks that every value is a finite number.
func ValidateFinite(field string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeParameter, "%s must be finite, got %v", field, v)
		}
	}
	return nil
}
