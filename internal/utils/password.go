package utils

import (
	"errors"
	"strings"
)

const passwordSpecialChars = "#?!@$%^&*-"

var (
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrPasswordNeedsSpecial = errors.New("password must contain at least one special character (#?!@$%^&*-)")
)

// ValidatePassword enforces the reset-password policy: minimum 8 characters
// and at least one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, passwordSpecialChars) {
		return ErrPasswordNeedsSpecial
	}
	return nil
}
