package sanitization

import (
	"regexp"
	"strings"
)

var (
	tagRegex    = regexp.MustCompile(`<[^>]*>`)
	entityRegex = regexp.MustCompile(`&[#a-zA-Z0-9]+;`)
	spaceRegex  = regexp.MustCompile(`\s+`)
)

// StripTags removes tag-like substrings and HTML entities from a string and
// trims surrounding whitespace. This is a best-effort stripper for form input,
// not an HTML parser; it errs on the side of removing too much.
func StripTags(input string) string {
	safe := tagRegex.ReplaceAllString(input, "")
	safe = entityRegex.ReplaceAllString(safe, "")
	return strings.TrimSpace(safe)
}

// SanitizeText strips tags and collapses runs of whitespace into single spaces
func SanitizeText(input string) string {
	safe := StripTags(input)
	safe = spaceRegex.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail normalizes an email address for comparison and delivery
func SanitizeEmail(input string) string {
	email := strings.ToLower(input)
	email = strings.TrimSpace(email)
	return StripTags(email)
}
