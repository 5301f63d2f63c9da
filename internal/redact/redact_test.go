package redact

import (
	"strings"
	"testing"
)

func TestScrub_Email(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain address", "contact alice@example.com for details"},
		{"plus tag", "send to bob+jobs@mail.example.org today"},
		{"subdomain", "hr@careers.big-corp.co.uk is the inbox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scrub(tt.input)
			if strings.Contains(got, "@") {
				t.Errorf("raw email survived: %q", got)
			}
			if !strings.Contains(got, EmailPlaceholder) {
				t.Errorf("expected placeholder in %q", got)
			}
		})
	}
}

func TestScrub_Phone(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"dashed", "call 555-123-4567 after noon"},
		{"dotted", "fax 555.987.6543"},
		{"bare ten digits", "cell 5551234567"},
		{"with country code", "+91 9876543210 is my number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scrub(tt.input)
			if !strings.Contains(got, PhonePlaceholder) {
				t.Errorf("Scrub(%q) = %q, phone not redacted", tt.input, got)
			}
		})
	}
}

func TestScrub_Idempotent(t *testing.T) {
	input := "reach alice@example.com or 555-123-4567"
	once := Scrub(input)
	twice := Scrub(once)
	if once != twice {
		t.Errorf("second application changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestScrub_Passthrough(t *testing.T) {
	input := "ten years of Go experience, no contact details here"
	if got := Scrub(input); got != input {
		t.Errorf("clean text was modified: %q", got)
	}
	if got := Scrub(""); got != "" {
		t.Errorf("empty input: got %q", got)
	}
}
