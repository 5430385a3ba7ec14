// Package validation holds the field rules shared by the portfolio records and the contact form.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinMessageLength is the shortest accepted message body.
	MinMessageLength = 10
	// MaxMessageLength is the longest accepted message body for length-checked paths.
	MaxMessageLength = 500
)

var (
	emailPattern        = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern        = regexp.MustCompile(`^[+]?[0-9]{8,15}$`)
	chileanPhonePattern = regexp.MustCompile(`^\+569\d{8}$`)
	personNamePattern   = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// IsValidPhone accepts blank input; otherwise 8 to 15 digits with an optional leading +.
func IsValidPhone(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	return phonePattern.MatchString(s)
}

// IsValidChileanPhone requires the mobile form +569XXXXXXXX.
func IsValidChileanPhone(s string) bool {
	return chileanPhonePattern.MatchString(s)
}

// IsValidName is the loose name rule: at least two characters after trimming.
func IsValidName(s string) bool {
	return runeLen(strings.TrimSpace(s)) >= 2
}

// IsValidPersonName is the form rule: at least three characters, letters and spaces only.
func IsValidPersonName(s string) bool {
	trimmed := strings.TrimSpace(s)
	return runeLen(trimmed) >= 3 && personNamePattern.MatchString(trimmed)
}

// IsValidMessageLength reports whether the trimmed message is within [10, 500] characters.
func IsValidMessageLength(s string) bool {
	n := runeLen(strings.TrimSpace(s))
	return n >= MinMessageLength && n <= MaxMessageLength
}

// SanitizeMessage trims s and collapses every whitespace run into a single space.
func SanitizeMessage(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// IsValidLatitude reports whether x is within [-90, 90].
func IsValidLatitude(x float64) bool {
	return x >= -90.0 && x <= 90.0
}

// IsValidLongitude reports whether x is within [-180, 180].
func IsValidLongitude(x float64) bool {
	return x >= -180.0 && x <= 180.0
}

// AreValidCoordinates is the conjunction of the latitude and longitude checks.
// (0, 0) is accepted.
func AreValidCoordinates(lat, lng float64) bool {
	return IsValidLatitude(lat) && IsValidLongitude(lng)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
