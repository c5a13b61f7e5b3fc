// Package ids generates record IDs and resolves short ID prefixes.
package ids

import "github.com/google/uuid"

// New returns a random (version 4) UUID string.
func New() string {
	return uuid.NewString()
}

// IsUUID reports whether value parses as a UUID.
func IsUUID(value string) bool {
	return uuid.Validate(value) == nil
}
