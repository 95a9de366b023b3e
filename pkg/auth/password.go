package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword wraps every password strength violation so callers
// can map the whole family to one outcome.
var ErrWeakPassword = errors.New("auth: weak password")

// checkPasswordStrength enforces the minimum password rule: at least 6
// characters with at least one letter and one digit.
func checkPasswordStrength(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrWeakPassword)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain a letter", ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain a digit", ErrWeakPassword)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
