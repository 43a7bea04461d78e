package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}
	return emailRegex.MatchString(strings.ToLower(email))
}

// ValidatePassword enforces the minimum length accepted at login and on
// password changes.
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}
