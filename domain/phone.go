package domain

import (
	"regexp"
	"strings"
)

var (
	nonPhoneChars   = regexp.MustCompile(`[^\d+]`)
	phoneSeparators = regexp.MustCompile(`[\s().-]`)
	localPhone      = regexp.MustCompile(`^\d{11}$`)
	intlPhone       = regexp.MustCompile(`^\+234\d{10}$`)
)

// NormalizePhone rewrites a phone number into one comparable form so that
// the local and the +234 country-code spelling of the same number compare
// equal. An empty input normalizes to "" and never counts as a match.
func NormalizePhone(raw string) string {
	cleaned := nonPhoneChars.ReplaceAllString(raw, "")

	// Convert +234 format to 0 format for consistent comparison
	if strings.HasPrefix(cleaned, "+234") {
		cleaned = "0" + cleaned[len("+234"):]
	}

	return strings.ReplaceAll(cleaned, "+", "")
}

// ValidPhone reports whether the number is an 11-digit local number
// (e.g. 08012345678) or +234 followed by 10 digits (e.g. +2348012345678).
// Separator punctuation is tolerated; any other character makes the
// number malformed, so a trailing letter is never silently dropped.
func ValidPhone(raw string) bool {
	cleaned := phoneSeparators.ReplaceAllString(raw, "")
	return localPhone.MatchString(cleaned) || intlPhone.MatchString(cleaned)
}
