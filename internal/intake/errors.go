package intake

import "errors"

var (
	ErrCountyRequired = errors.New("county is required")
	ErrInvalidAgeBand = errors.New("invalid age band")
	ErrInvalidRiskTag = errors.New("invalid risk tag")
	ErrSubmitFailed   = errors.New("failed to submit report")
	ErrOutcomeUnknown = errors.New("submission outcome unknown, flagged for reconciliation")
)
