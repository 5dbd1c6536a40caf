package utils

import (
	"strings"
)

// NormalizePhone reduces a raw phone string to its canonical 10-digit form:
// every non-digit is stripped and a leading "91" country code is dropped from
// 12-digit results. Applying it to an already canonical number returns it
// unchanged. Validation is the caller's job, see IsValidPhone.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}
	return cleaned
}

// IsValidPhone reports whether p is exactly 10 digits.
func IsValidPhone(p string) bool {
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
