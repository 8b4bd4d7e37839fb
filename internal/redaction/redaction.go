// Package redaction removes personally identifying information from
// free text before anything is persisted. All functions are pure and
// total; absence of PII is a valid outcome, not an error.
package redaction

import "strings"

// Summary labels, in fixed category order.
var summaryLabels = []struct {
	placeholder string
	label       string
}{
	{PlaceholderName, "Names removed"},
	{PlaceholderPhone, "Phone numbers removed"},
	{PlaceholderEmail, "Email addresses removed"},
	{PlaceholderID, "ID numbers removed"},
	{PlaceholderAddress, "Addresses removed"},
}

// Redact replaces every PII match with its category placeholder.
// Idempotent: redacting an already-redacted string is a no-op.
func Redact(text string) string {
	if text == "" {
		return text
	}

	redacted := text
	for _, r := range rules {
		for _, p := range r.patterns {
			redacted = p.ReplaceAllString(redacted, r.placeholder)
		}
	}

	for _, c := range collapsePatterns {
		redacted = c.re.ReplaceAllString(redacted, c.replacement)
	}

	return strings.TrimSpace(redacted)
}

// HasRedactions reports whether redaction changed the text and left at
// least one placeholder behind.
func HasRedactions(original, redacted string) bool {
	if original == redacted {
		return false
	}
	for _, s := range summaryLabels {
		if strings.Contains(redacted, s.placeholder) {
			return true
		}
	}
	return false
}

// Summarize reports which categories fired, in fixed category order,
// for user-facing transparency.
func Summarize(original, redacted string) []string {
	labels := make([]string, 0, len(summaryLabels))
	for _, s := range summaryLabels {
		if strings.Contains(redacted, s.placeholder) {
			labels = append(labels, s.label)
		}
	}
	return labels
}
