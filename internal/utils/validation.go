package utils

import (
	"regexp"
	"strings"
)

// localPartRegex restricts the local part of an email address to common safe
// characters. Deliberately narrower than RFC 5322; quoted locals and comments
// are not worth accepting on a public form.
var localPartRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+$`)

// domainLabelRegex matches a single DNS label: alphanumeric at both ends,
// hyphens allowed inside.
var domainLabelRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?$`)

var tldRegex = regexp.MustCompile(`^[A-Za-z]{2,}$`)

// IsValidEmail checks whether the string is a syntactically plausible email
// address. Purely offline: no DNS lookup, no mailbox verification.
func IsValidEmail(s string) bool {
	if len(s) == 0 || len(s) > 254 {
		return false
	}

	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}

	local, domain := s[:at], s[at+1:]
	if !localPartRegex.MatchString(local) {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if !domainLabelRegex.MatchString(label) {
			return false
		}
	}

	// Top-level domain must be alphabetic
	return tldRegex.MatchString(labels[len(labels)-1])
}

// DigitsOnly strips every non-digit character from the string.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhoneUS checks whether the string normalizes to a valid NANP number:
// ten digits [2-9]XX[2-9]XXXXXX, optionally prefixed with a leading 1.
// N11 service codes (411, 911, ...) are rejected as area or exchange codes.
func IsValidPhoneUS(s string) bool {
	digits := DigitsOnly(s)

	if len(digits) == 11 {
		if digits[0] != '1' {
			return false
		}
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return false
	}

	area, exchange := digits[:3], digits[3:6]
	if area[0] < '2' || exchange[0] < '2' {
		return false
	}
	if area[1:] == "11" || exchange[1:] == "11" {
		return false
	}
	return true
}
