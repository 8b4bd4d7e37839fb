package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	pkgErrors "github.com/rodgerswisdom/safegal-guardian-alert/pkg/errors"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/response"
)

var (
	errUserIDRequired   = pkgErrors.NewHTTPError(400, "User ID is required")
	errStoreUnavailable = pkgErrors.NewHTTPError(
		503, "Rate limit store unavailable, please retry",
	)
)

// ClearSoftBlock - Lift a soft block
// @Summary Clear a user's soft block
// @Description Lift the soft block set after repeated unfounded reports. Administrative action for internal services.
// @Tags RateLimit
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /internal/rate-limits/{user_id}/clear [post]
func (h *handler) ClearSoftBlock(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("user_id")

	if err := h.uc.ClearSoftBlock(ctx, userID); err != nil {
		h.l.Errorf(ctx, "ratelimit.delivery.http.ClearSoftBlock: usecase ClearSoftBlock failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, gin.H{"user_id": userID, "soft_block": false})
}

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, ratelimit.ErrUserIDRequired):
		return errUserIDRequired
	case errors.Is(err, ratelimit.ErrCheckFailed):
		return errStoreUnavailable
	default:
		panic(err)
	}
}
