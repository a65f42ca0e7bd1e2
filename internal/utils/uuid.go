package utils

import "github.com/google/uuid"

// IsUUID reports whether s parses as a UUID; path params are validated
// with this before any store call.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
