// Package validation formats errors for values drawn from a fixed set.
package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins string-like values for error messages.
func FormatValidValues[T ~string](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, string(value))
	}
	return strings.Join(formatted, ", ")
}

// InvalidValueError wraps base with the rejected value and the accepted set.
func InvalidValueError[T ~string](base error, value string, valid []T) error {
	return fmt.Errorf("%w %q: must be one of %s", base, value, FormatValidValues(valid))
}
