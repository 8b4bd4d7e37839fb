package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/scope"
)

func (h *handler) processListCasesRequest(c *gin.Context) (listCasesReq, model.Scope, error) {
	var req listCasesReq

	ctx := c.Request.Context()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.processListCasesRequest: ShouldBindQuery failed: %v", err)
		return req, model.Scope{}, errWrongQuery
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processCaseIDRequest(c *gin.Context) (string, model.Scope) {
	return c.Param("case_id"), scope.GetScopeFromContext(c.Request.Context())
}

func (h *handler) processRecordActionRequest(c *gin.Context) (cases.RecordActionInput, model.Scope, error) {
	var req recordActionReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.processRecordActionRequest: ShouldBindJSON failed: %v", err)
		return cases.RecordActionInput{}, model.Scope{}, errWrongBody
	}

	input := cases.RecordActionInput{
		CaseID:     c.Param("case_id"),
		ActionType: req.ActionType,
		Note:       req.Note,
	}
	return input, scope.GetScopeFromContext(ctx), nil
}

func (h *handler) processCloseRequest(c *gin.Context) (cases.CloseInput, model.Scope, error) {
	var req closeReq

	ctx := c.Request.Context()
	// Body is optional for close.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Errorf(ctx, "cases.delivery.http.processCloseRequest: ShouldBindJSON failed: %v", err)
			return cases.CloseInput{}, model.Scope{}, errWrongBody
		}
	}

	input := cases.CloseInput{
		CaseID: c.Param("case_id"),
		Note:   req.Note,
	}
	return input, scope.GetScopeFromContext(ctx), nil
}

func (h *handler) processMarkUnfoundedRequest(c *gin.Context) (cases.MarkUnfoundedInput, model.Scope, error) {
	var req unfoundedReq

	ctx := c.Request.Context()
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Errorf(ctx, "cases.delivery.http.processMarkUnfoundedRequest: ShouldBindJSON failed: %v", err)
			return cases.MarkUnfoundedInput{}, model.Scope{}, errWrongBody
		}
	}

	input := cases.MarkUnfoundedInput{
		CaseID: c.Param("case_id"),
		Note:   req.Note,
	}
	return input, scope.GetScopeFromContext(ctx), nil
}
