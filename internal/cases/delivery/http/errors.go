package http

import (
	"errors"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	pkgErrors "github.com/rodgerswisdom/safegal-guardian-alert/pkg/errors"
)

var (
	errWrongBody         = pkgErrors.NewHTTPError(400, "Invalid request body")
	errWrongQuery        = pkgErrors.NewHTTPError(400, "Invalid query parameters")
	errCaseNotFound      = pkgErrors.NewHTTPError(404, "Case not found")
	errInvalidTransition = pkgErrors.NewHTTPError(409, "Invalid status transition")
	errInvalidAction     = pkgErrors.NewHTTPError(400, "Invalid follow-up action")
	errPermissionDenied  = pkgErrors.NewHTTPError(403, "Permission denied")
	errStoreUnavailable  = pkgErrors.NewHTTPError(
		503, "Case store unavailable, please retry",
	)
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, cases.ErrCaseNotFound):
		return errCaseNotFound
	case errors.Is(err, cases.ErrInvalidTransition):
		return errInvalidTransition
	case errors.Is(err, cases.ErrInvalidAction):
		return errInvalidAction
	case errors.Is(err, cases.ErrPermissionDenied):
		return errPermissionDenied
	case errors.Is(err, cases.ErrStoreUnavailable):
		return errStoreUnavailable
	default:
		panic(err)
	}
}
