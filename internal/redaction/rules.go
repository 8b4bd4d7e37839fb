package redaction

import "regexp"

// Placeholder tokens, one per category.
const (
	PlaceholderName    = "[NAME]"
	PlaceholderPhone   = "[PHONE]"
	PlaceholderEmail   = "[EMAIL]"
	PlaceholderID      = "[ID]"
	PlaceholderAddress = "[ADDRESS]"
)

// rule is one redaction category: every pattern match is replaced with
// the category placeholder. Rules run in declaration order; specific
// patterns run before broader ones inside a category.
type rule struct {
	category    string
	placeholder string
	patterns    []*regexp.Regexp
}

// rules is the ordered redaction rule list. Extending a category means
// appending a pattern here, not touching control flow.
var rules = []rule{
	{
		category:    "names",
		placeholder: PlaceholderName,
		patterns: []*regexp.Regexp{
			// Common first names
			regexp.MustCompile(`(?i)\b(Mary|John|Jane|Peter|Grace|James|Sarah|David|Faith|Michael|Elizabeth|Joseph|Anne|Daniel|Rose|Paul|Lucy|Samuel|Margaret|Francis|Catherine|George|Alice)\b`),
			// Common surnames
			regexp.MustCompile(`(?i)\b(Kamau|Wanjiku|Mwangi|Njoroge|Ochieng|Otieno|Kipchoge|Cheruiyot|Wafula|Maina|Karanja|Githui|Mutua|Musyoka|Kiprotich|Jepkorir)\b`),
			// Capitalized word pairs that look like full names
			regexp.MustCompile(`\b[A-Z][a-z]{2,}\s+[A-Z][a-z]{2,}(?:\s+[A-Z][a-z]{2,})?\b`),
		},
	},
	{
		category:    "phones",
		placeholder: PlaceholderPhone,
		patterns: []*regexp.Regexp{
			// +254 format
			regexp.MustCompile(`\+254\s*[17]\d{2}\s*\d{3}\s*\d{3}`),
			// 07xx or 01xx format
			regexp.MustCompile(`\b0[17]\d{2}[\s-]?\d{3}[\s-]?\d{3}\b`),
			// Bare 10-13 digit runs
			regexp.MustCompile(`\b\d{10,13}\b`),
		},
	},
	{
		category:    "emails",
		placeholder: PlaceholderEmail,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		},
	},
	{
		category:    "ids",
		placeholder: PlaceholderID,
		patterns: []*regexp.Regexp{
			// National ID format, 7-8 digit runs
			regexp.MustCompile(`\b\d{7,8}\b`),
		},
	},
	{
		category:    "addresses",
		placeholder: PlaceholderAddress,
		patterns: []*regexp.Regexp{
			// P.O. Box patterns
			regexp.MustCompile(`(?i)P\.?\s*O\.?\s*Box\s*\d+`),
			// Street address indicators
			regexp.MustCompile(`(?i)\b\d+\s+(Street|Road|Avenue|Lane|Drive|Close|Way)\b`),
		},
	},
}

// collapsePatterns collapse runs of identical placeholders separated by
// whitespace into one, keyed by category order.
var collapsePatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(\[NAME\]\s*){2,}`), PlaceholderName + " "},
	{regexp.MustCompile(`(\[PHONE\]\s*){2,}`), PlaceholderPhone + " "},
	{regexp.MustCompile(`(\[EMAIL\]\s*){2,}`), PlaceholderEmail + " "},
	{regexp.MustCompile(`(\[ID\]\s*){2,}`), PlaceholderID + " "},
	{regexp.MustCompile(`(\[ADDRESS\]\s*){2,}`), PlaceholderAddress + " "},
}
