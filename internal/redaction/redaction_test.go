package redaction

import (
	"regexp"
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	t.Run("empty string passes through", func(t *testing.T) {
		if got := Redact(""); got != "" {
			t.Errorf("Redact(\"\") = %q, want empty", got)
		}
	})

	t.Run("text without PII is unchanged", func(t *testing.T) {
		in := "she mentioned something is planned soon"
		if got := Redact(in); got != in {
			t.Errorf("Redact(%q) = %q, want unchanged", in, got)
		}
	})

	t.Run("name and phone", func(t *testing.T) {
		got := Redact("John Mwangi called from 0712345678")

		if !strings.Contains(got, PlaceholderName) {
			t.Errorf("expected %s in %q", PlaceholderName, got)
		}
		if !strings.Contains(got, PlaceholderPhone) {
			t.Errorf("expected %s in %q", PlaceholderPhone, got)
		}

		digitRun := regexp.MustCompile(`\d{7,}`)
		if digitRun.MatchString(got) {
			t.Errorf("digit run of length >= 7 survived redaction: %q", got)
		}
	})

	t.Run("international phone format", func(t *testing.T) {
		got := Redact("reach me at +254 712 345 678")
		if !strings.Contains(got, PlaceholderPhone) {
			t.Errorf("expected %s in %q", PlaceholderPhone, got)
		}
	})

	t.Run("email", func(t *testing.T) {
		got := Redact("contact teacher@school.ac.ke about it")
		if !strings.Contains(got, PlaceholderEmail) {
			t.Errorf("expected %s in %q", PlaceholderEmail, got)
		}
		if strings.Contains(got, "@") {
			t.Errorf("email survived redaction: %q", got)
		}
	})

	t.Run("id number", func(t *testing.T) {
		got := Redact("her guardian holds ID 12345678")
		if !strings.Contains(got, PlaceholderID) {
			t.Errorf("expected %s in %q", PlaceholderID, got)
		}
	})

	t.Run("addresses", func(t *testing.T) {
		got := Redact("they live at P.O. Box 1234 near 15 Moi Avenue")
		if !strings.Contains(got, PlaceholderAddress) {
			t.Errorf("expected %s in %q", PlaceholderAddress, got)
		}
	})

	t.Run("capitalized name pairs", func(t *testing.T) {
		got := Redact("a girl named Wambui Kariuki was seen")
		if !strings.Contains(got, PlaceholderName) {
			t.Errorf("expected %s in %q", PlaceholderName, got)
		}
	})

	t.Run("consecutive placeholders collapse", func(t *testing.T) {
		got := Redact("Mary Grace Sarah went home")
		if strings.Contains(got, PlaceholderName+" "+PlaceholderName) {
			t.Errorf("consecutive placeholders not collapsed: %q", got)
		}
	})

	t.Run("mixed adversarial input", func(t *testing.T) {
		in := "John Mwangi (0712345678, reporter99@mail.com, ID 1234567) lives at P.O. Box 99"
		got := Redact(in)

		if regexp.MustCompile(`\d{7,}`).MatchString(got) {
			t.Errorf("long digit run survived: %q", got)
		}
		if strings.Contains(got, "@") {
			t.Errorf("email survived: %q", got)
		}
		if strings.Contains(got, "Mwangi") {
			t.Errorf("surname survived: %q", got)
		}
	})
}

func TestRedactIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"no pii here",
		"John Mwangi called from 0712345678",
		"contact teacher@school.ac.ke or P.O. Box 1234",
		"Mary Grace Sarah with ID 12345678 at 15 Moi Road",
		"+254 712 345 678 then 0712-345-678",
	}

	for _, in := range inputs {
		once := Redact(in)
		twice := Redact(once)
		if once != twice {
			t.Errorf("Redact not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestHasRedactions(t *testing.T) {
	t.Run("reports true when placeholder present", func(t *testing.T) {
		original := "John called"
		redacted := Redact(original)
		if !HasRedactions(original, redacted) {
			t.Errorf("HasRedactions(%q, %q) = false, want true", original, redacted)
		}
	})

	t.Run("reports false for clean text", func(t *testing.T) {
		in := "nothing sensitive"
		if HasRedactions(in, Redact(in)) {
			t.Error("HasRedactions reported true for clean text")
		}
	})
}

func TestSummarize(t *testing.T) {
	original := "John Mwangi at 0712345678 or mail guardian@mail.com"
	redacted := Redact(original)
	labels := Summarize(original, redacted)

	want := []string{"Names removed", "Phone numbers removed", "Email addresses removed"}
	if len(labels) != len(want) {
		t.Fatalf("Summarize returned %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
}
