// Package auth provides authentication primitives: the password policy,
// argon2id password hashing, and PASETO session tokens.
package auth

import "unicode"

// Password policy bounds.
const (
	minPasswordLength = 6
	// Prevent DoS from massive passwords consuming CPU/memory during hashing.
	maxPasswordLength = 1024
)

// IsPasswordAllowed reports whether a password satisfies the strength policy:
// at least 6 characters, with at least one lowercase letter, one uppercase
// letter, one digit, and one symbol (anything not alphanumeric or whitespace).
// Pure predicate, total over all inputs; the empty string is rejected.
func IsPasswordAllowed(password string) bool {
	runes := []rune(password)
	if len(runes) < minPasswordLength || len(password) > maxPasswordLength {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsSpace(r):
			hasSymbol = true
		}
	}

	return hasLower && hasUpper && hasDigit && hasSymbol
}
