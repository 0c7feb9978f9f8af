package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly greater than zero.
func ValidatePositive(code Code, name string, v float64) error {
	if err := ValidateFinite(code, name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(code, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative rejects negative values.
func ValidateNonNegative(code Code, name string, v float64) error {
	if err := ValidateFinite(code, name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(code, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor accepts an empty string, a hex color or a CSS color keyword.
//
// Keywords are only checked for shape (ASCII letters), not against the CSS
// list, since sinks pass them through untouched.
func ValidateColor(code Code, name, color string) error {
	if color == "" {
		return nil
	}
	if strings.HasPrefix(color, "#") {
		if !hexColorRegex.MatchString(color) {
			return New(code, "%s: invalid hex color %q", name, color)
		}
		return nil
	}
	for _, r := range color {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return New(code, "%s: invalid color keyword %q", name, color)
		}
	}
	return nil
}
