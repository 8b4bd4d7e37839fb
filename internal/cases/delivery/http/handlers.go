package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/response"
)

// ListCases - List cases for the dashboard
// @Summary List cases
// @Description List cases newest first with optional county, status and minimum score filters. Reporters only see their own cases.
// @Tags Cases
// @Produce json
// @Param county query string false "County filter"
// @Param status query string false "Status filter"
// @Param min_score query int false "Minimum risk score"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listCasesResp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/cases [get]
func (h *handler) ListCases(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListCasesRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.ListCases: processListCasesRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.ListCases(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.ListCases: usecase ListCases failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newListCasesResp(output))
}

// GetCase - Get one case
// @Summary Get a case
// @Description Return one case by ID. Reporters only see their own cases.
// @Tags Cases
// @Produce json
// @Param case_id path string true "Case ID"
// @Success 200 {object} caseResp
// @Failure 404 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/cases/{case_id} [get]
func (h *handler) GetCase(c *gin.Context) {
	ctx := c.Request.Context()

	caseID, sc := h.processCaseIDRequest(c)

	output, err := h.uc.GetCase(ctx, sc, caseID)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.GetCase: usecase GetCase failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newCaseResp(output))
}

// Acknowledge - Acknowledge a new case
// @Summary Acknowledge a case
// @Description Move a new case to acknowledged. The audit entry records cpo_ack or ngo_ack depending on the actor's role.
// @Tags Cases
// @Produce json
// @Param case_id path string true "Case ID"
// @Success 200 {object} caseResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/cases/{case_id}/ack [post]
func (h *handler) Acknowledge(c *gin.Context) {
	ctx := c.Request.Context()

	caseID, sc := h.processCaseIDRequest(c)

	output, err := h.uc.Acknowledge(ctx, sc, caseID)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.Acknowledge: usecase Acknowledge failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newCaseResp(output))
}

// RecordAction - Record a follow-up action
// @Summary Record a follow-up action
// @Description Log a follow-up action (call_guardian, school_visit_booked, escort_to_clinic) and move an acknowledged case to in progress.
// @Tags Cases
// @Accept json
// @Produce json
// @Param case_id path string true "Case ID"
// @Param body body recordActionReq true "Action to record"
// @Success 200 {object} caseResp
// @Failure 400 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/cases/{case_id}/actions [post]
func (h *handler) RecordAction(c *gin.Context) {
	ctx := c.Request.Context()

	input, sc, err := h.processRecordActionRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.RecordAction: processRecordActionRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.RecordAction(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.RecordAction: usecase RecordAction failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newCaseResp(output))
}

// Close - Close a case
// @Summary Close a case
// @Description Finish a case in progress.
// @Tags Cases
// @Accept json
// @Produce json
// @Param case_id path string true "Case ID"
// @Param body body closeReq false "Closing note"
// @Success 200 {object} caseResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/cases/{case_id}/close [post]
func (h *handler) Close(c *gin.Context) {
	ctx := c.Request.Context()

	input, sc, err := h.processCloseRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.Close: processCloseRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.Close(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.Close: usecase Close failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newCaseResp(output))
}

// MarkUnfounded - Mark a case unfounded
// @Summary Mark a case unfounded
// @Description Finish a case in progress as unfounded. The reporter's unfounded ledger is charged in the same transaction.
// @Tags Cases
// @Accept json
// @Produce json
// @Param case_id path string true "Case ID"
// @Param body body unfoundedReq false "Reason note"
// @Success 200 {object} caseResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/cases/{case_id}/unfounded [post]
func (h *handler) MarkUnfounded(c *gin.Context) {
	ctx := c.Request.Context()

	input, sc, err := h.processMarkUnfoundedRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.MarkUnfounded: processMarkUnfoundedRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.MarkUnfounded(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "cases.delivery.http.MarkUnfounded: usecase MarkUnfounded failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newCaseResp(output))
}
