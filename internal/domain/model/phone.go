package model

import "strings"

// PhoneDigits is the length of a valid phone number.
const PhoneDigits = 10

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhone reports whether s is exactly ten ASCII digits.
func IsPhone(s string) bool {
	return len(s) == PhoneDigits && DigitsOnly(s) == s
}
