package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// City names: letters, spaces, dots and hyphens, 2-50 chars
	cityRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z .-]{1,49}$`)

	// Route identifiers are ORIGIN_DEST
	routeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z .-]{1,49}_[A-Za-z][A-Za-z .-]{1,49}$`)

	// Labels such as airline and travel class
	labelRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]{0,49}$`)
)

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

func ValidateCity(name string) error {
	name = SanitizeString(name)

	if name == "" {
		return fmt.Errorf("%w: city cannot be empty", ErrInvalidInput)
	}
	if strings.Contains(name, "_") || !cityRegex.MatchString(name) {
		return fmt.Errorf("%w: city %q must be 2-50 letters", ErrInvalidInput, name)
	}
	return nil
}

// ValidateRoute checks the ORIGIN_DEST form. Unknown routes are valid; they
// price with the fallback fare.
func ValidateRoute(route string) error {
	route = SanitizeString(route)

	if route == "" {
		return fmt.Errorf("%w: route cannot be empty", ErrInvalidInput)
	}
	if strings.Count(route, "_") != 1 || !routeRegex.MatchString(route) {
		return fmt.Errorf("%w: route %q must have the form ORIGIN_DEST", ErrInvalidInput, route)
	}
	return nil
}

// ValidateLabel checks free-form identifiers such as airline or travel class.
func ValidateLabel(field, value string) error {
	value = SanitizeString(value)

	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, field)
	}
	if !labelRegex.MatchString(value) {
		return fmt.Errorf("%w: %s %q contains unsupported characters", ErrInvalidInput, field, value)
	}
	return nil
}

func ValidateHour(field string, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %s must be between 0 and 23", ErrInvalidInput, field)
	}
	return nil
}
