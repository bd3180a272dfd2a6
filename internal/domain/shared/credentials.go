package shared

import (
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return "", NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plain password
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a single valid address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// ValidatePersonName checks a display name of a person
func ValidatePersonName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
