package githist

import (
	"strings"
	"time"
	"unicode"
)

// DateLayout is the canonical round-trip format for editable dates.
const DateLayout = "2006-01-02 15:04:05 -0700"

// dateLayouts are tried in order; the first successful parse wins. Layouts
// without a zone are interpreted as UTC.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ValidateEmail checks that a string looks like an email address. It is
// deliberately permissive rather than RFC-5322-complete: exactly one "@",
// non-empty local and domain parts, an internal dot in the domain, and no
// whitespace anywhere.
func ValidateEmail(email string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return &InvalidEmailError{Value: email}
	}
	if local == "" || domain == "" {
		return &InvalidEmailError{Value: email}
	}
	if !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") ||
		strings.HasSuffix(domain, ".") {
		return &InvalidEmailError{Value: email}
	}
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 {
		return &InvalidEmailError{Value: email}
	}
	return nil
}

// ParseDate parses a flexible date string into a timestamp with fixed offset.
// Accepted forms, in order of attempt:
//
//	2024-01-15 14:30:00 +0000
//	2024-01-15 14:30:00+0000
//	2024-01-15 14:30:00        (UTC assumed)
//	2024-01-15 14:30           (UTC, zero seconds)
//	2024-01-15                 (UTC midnight)
//
// Surrounding whitespace is ignored.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidDateError{Value: trimmed}
}

// FormatDate renders a timestamp in the canonical editable form. Formatting
// then re-parsing yields the same instant and offset.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
