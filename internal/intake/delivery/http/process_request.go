package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/scope"
)

func (h *handler) processSubmitRequest(c *gin.Context) (submitReq, model.Scope, error) {
	var req submitReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.processSubmitRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processPreviewRequest(c *gin.Context) (previewReq, error) {
	var req previewReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.processPreviewRequest: ShouldBindJSON failed: %v", err)
		return req, errWrongBody
	}

	return req, nil
}
