package http

import (
	"errors"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	pkgErrors "github.com/rodgerswisdom/safegal-guardian-alert/pkg/errors"
)

var (
	errWrongBody            = pkgErrors.NewHTTPError(400, "Invalid request body")
	errCountyRequired       = pkgErrors.NewHTTPError(400, "County is required")
	errInvalidAgeBand       = pkgErrors.NewHTTPError(400, "Invalid age band")
	errInvalidRiskTag       = pkgErrors.NewHTTPError(400, "Invalid risk tag")
	errRateLimitUnavailable = pkgErrors.NewHTTPError(
		503, "Rate limit check unavailable, please retry",
	)
	errSubmitFailed = pkgErrors.NewHTTPError(
		503, "Failed to submit report, please retry",
	)
	errOutcomeUnknown = pkgErrors.NewHTTPError(
		500, "Submission outcome unknown, flagged for review",
	)
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, intake.ErrCountyRequired):
		return errCountyRequired
	case errors.Is(err, intake.ErrInvalidAgeBand):
		return errInvalidAgeBand
	case errors.Is(err, intake.ErrInvalidRiskTag):
		return errInvalidRiskTag
	case errors.Is(err, ratelimit.ErrCheckFailed):
		return errRateLimitUnavailable
	case errors.Is(err, intake.ErrSubmitFailed):
		return errSubmitFailed
	case errors.Is(err, intake.ErrOutcomeUnknown):
		return errOutcomeUnknown
	default:
		panic(err)
	}
}
