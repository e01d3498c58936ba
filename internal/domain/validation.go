package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidPIN   = errors.New("invalid pin")
	ErrInvalidName  = errors.New("invalid name")
)

// Validation constants
const (
	MaxNameLength = 255
	MinPINLength  = 4
	MaxPINLength  = 6
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]+$`)
)

// ValidatePhone validates a phone number: optional leading +, 10-15 digits.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidatePIN validates a numeric PIN of 4-6 digits.
func ValidatePIN(pin string) error {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return fmt.Errorf("%w: must be %d-%d digits", ErrInvalidPIN, MinPINLength, MaxPINLength)
	}
	if !pinRegex.MatchString(pin) {
		return fmt.Errorf("%w: digits only", ErrInvalidPIN)
	}
	return nil
}

// ValidateName validates an account holder's display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}
