package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processListEntriesRequest(c *gin.Context) (listEntriesReq, error) {
	var req listEntriesReq

	ctx := c.Request.Context()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.processListEntriesRequest: ShouldBindQuery failed: %v", err)
		return req, errWrongQuery
	}

	return req, nil
}
