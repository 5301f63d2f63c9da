package redact

import "regexp"

const (
	EmailPlaceholder = "[REDACTED_EMAIL]"
	PhonePlaceholder = "[REDACTED_PHONE]"
)

// Purely local pattern matching - no network or model access. The placeholders
// match neither pattern, which is what makes Scrub idempotent.
var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{2,3}[-.\s]?)?(\d{10}|\d{3}[-.\s]\d{3}[-.\s]\d{4})`)
)

// Scrub replaces email addresses, then phone numbers, with constant
// placeholder tokens. Unmatched text passes through unchanged.
func Scrub(text string) string {
	text = emailPattern.ReplaceAllString(text, EmailPlaceholder)
	text = phonePattern.ReplaceAllString(text, PhonePlaceholder)
	return text
}
