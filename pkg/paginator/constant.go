package paginator

const (
	// DefaultPage is used when the request carries no page or an invalid one.
	DefaultPage = 1
	// DefaultLimit is the page size for the case and audit feeds when none is requested.
	DefaultLimit = 15
	// MaxLimit caps the page size so a single listing cannot walk the whole table.
	MaxLimit = 100
)
