// utils/validator.go - Request input validation
package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// minPasswordLength applies to registration and password changes alike.
const minPasswordLength = 8

// ValidateEmail reports whether email looks like a deliverable address.
// Stricter than the binding tag: it requires a dotted domain.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks password strength and returns the rejection
// message to surface to the caller.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

// SanitizeInput trims surrounding whitespace and strips null bytes from
// free-text fields before they reach the database.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
