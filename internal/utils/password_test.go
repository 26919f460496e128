package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid with special char", "summer#2026", nil},
		{"valid exactly eight chars", "abcdef7!", nil},
		{"too short", "ab#1", ErrPasswordTooShort},
		{"seven chars with special", "abc#123", ErrPasswordTooShort},
		{"long but no special char", "correcthorsebattery", ErrPasswordNeedsSpecial},
		{"empty", "", ErrPasswordTooShort},
		{"only special chars", "#?!@$%^&*-", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
