package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestAnonymizePatient(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular email", email: "john.doe@example.com"},
		{name: "uppercase email", email: "JOHN.DOE@EXAMPLE.COM"},
		{name: "with whitespace", email: "  john.doe@example.com  "},
	}

	first := AnonymizePatient("john.doe@example.com")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnonymizePatient(tt.email)
			if !strings.HasPrefix(got, "patient:") {
				t.Errorf("expected patient: prefix, got %s", got)
			}
			if got != first {
				t.Errorf("anonymization should be case/space insensitive: %s != %s", got, first)
			}
			if strings.Contains(got, "@") {
				t.Errorf("anonymized value must not contain the email: %s", got)
			}
		})
	}
}

func TestAnonymizePatientEmpty(t *testing.T) {
	if got := AnonymizePatient(""); got != "" {
		t.Errorf("expected empty string for empty email, got %s", got)
	}
}

func TestAnonymizePatientDistinct(t *testing.T) {
	a := AnonymizePatient("a@example.com")
	b := AnonymizePatient("b@example.com")
	if a == b {
		t.Error("different emails should hash differently")
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("expected <empty>, got %s", got)
	}
	got := SanitizeToken("ya29.secret-token")
	if strings.Contains(got, "secret") {
		t.Errorf("sanitized token must not contain token material: %s", got)
	}
	if got != "[token:17 chars]" {
		t.Errorf("unexpected sanitized form: %s", got)
	}
}

func TestErrNil(t *testing.T) {
	attr := Err(nil)
	// A nil error should produce an empty group that slog omits.
	if attr.Value.Kind() != slog.KindGroup {
		t.Errorf("expected group kind for nil error, got %v", attr.Value.Kind())
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"user@example.com", "example.com"},
		{"not-an-email", ""},
		{"", ""},
		{"a@b@c", ""},
	}
	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.expected {
			t.Errorf("ExtractDomain(%q) = %q, expected %q", tt.email, got, tt.expected)
		}
	}
}
