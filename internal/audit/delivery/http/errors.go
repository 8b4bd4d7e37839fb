package http

import (
	"errors"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	pkgErrors "github.com/rodgerswisdom/safegal-guardian-alert/pkg/errors"
)

var (
	errWrongQuery       = pkgErrors.NewHTTPError(400, "Invalid query parameters")
	errStoreUnavailable = pkgErrors.NewHTTPError(
		503, "Audit store unavailable, please retry",
	)
	errChainViolation = pkgErrors.NewHTTPError(
		500, "Audit chain integrity violation",
	)
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, audit.ErrChainIntegrityViolation):
		return errChainViolation
	case errors.Is(err, audit.ErrStoreUnavailable):
		return errStoreUnavailable
	default:
		panic(err)
	}
}
