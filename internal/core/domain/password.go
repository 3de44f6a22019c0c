package domain

import (
	"errors"
	"strings"
)

const (
	MinPasswordLength = 8
	passwordSpecials  = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"
)

var (
	ErrPasswordTooShort    = errors.New("password too short")
	ErrPasswordNoUppercase = errors.New("password has no uppercase letter")
	ErrPasswordNoSpecial   = errors.New("password has no special character")
)

// CheckPassword returns every policy rule the password breaks.
func CheckPassword(password string) []error {
	var violations []error
	if len([]rune(password)) < MinPasswordLength {
		violations = append(violations, ErrPasswordTooShort)
	}
	if !strings.ContainsFunc(password, isASCIIUpper) {
		violations = append(violations, ErrPasswordNoUppercase)
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		violations = append(violations, ErrPasswordNoSpecial)
	}
	return violations
}

// Only A-Z counts; accented capitals do not satisfy the rule.
func isASCIIUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}
