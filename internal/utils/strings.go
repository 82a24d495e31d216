package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

// TrimOrEmpty normalizes user input.
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeStopCode trims and upper-cases a stop code.
func NormalizeStopCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidPhone accepts exactly ten digits.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// MaskPhone keeps the last three digits, for log lines.
func MaskPhone(s string) string {
	if len(s) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(s)-3) + s[len(s)-3:]
}
