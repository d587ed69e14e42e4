// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidatePlate checks a Turkish licence plate (e.g. "34 ABC 123")
func ValidatePlate(plate string) bool {
	cleaned := strings.ToUpper(strings.ReplaceAll(plate, " ", ""))

	// Province code (01-81) + 1-3 letters + 2-4 digits
	regex := `^(0[1-9]|[1-7][0-9]|8[01])[A-Z]{1,3}\d{2,4}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// NormalizePlate uppercases a plate and strips inner whitespace so
// lookups are insensitive to how the plate was typed
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}
