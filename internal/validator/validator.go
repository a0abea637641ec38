package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator checks free-text conversation input with configurable limits
type Validator struct {
	maxMetersPerUser int
}

// NewValidator creates a new validator with the specified limits
func NewValidator(maxMetersPerUser int) *Validator {
	return &Validator{maxMetersPerUser: maxMetersPerUser}
}

// AccountNumber validates a personal account number: digits only
func (v *Validator) AccountNumber(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("account number is empty")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("account number must contain only digits")
		}
	}
	return trimmed, nil
}

// FullName validates an account owner's name
func (v *Validator) FullName(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if len([]rune(trimmed)) < 3 {
		return "", fmt.Errorf("full name is too short")
	}
	return trimmed, nil
}

// MetersCount validates a declared counter count against the per-user limit
func (v *Validator) MetersCount(input string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("meters count must be a number")
	}
	if count < 1 || count > v.maxMetersPerUser {
		return 0, fmt.Errorf("meters count must be between 1 and %d", v.maxMetersPerUser)
	}
	return count, nil
}

// ReadingValue validates a submitted meter reading: a non-negative integer
func (v *Validator) ReadingValue(input string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reading must be a number")
	}
	if value < 0 {
		return 0, fmt.Errorf("reading must not be negative")
	}
	return value, nil
}

// NormalizePhone brings a phone number, typed or shared as a contact,
// to the +380XXXXXXXXX form
func NormalizePhone(input string) (string, error) {
	phone := strings.NewReplacer(" ", "", "(", "", ")", "", "-", "").Replace(strings.TrimSpace(input))
	if phone == "" {
		return "", fmt.Errorf("phone number is empty")
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	if !strings.HasPrefix(phone, "+38") || len(phone) != 13 {
		return "", fmt.Errorf("phone number must match +380XXXXXXXXX")
	}
	for _, r := range phone[3:] {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("phone number must match +380XXXXXXXXX")
		}
	}

	return phone, nil
}
