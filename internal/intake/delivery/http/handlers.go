package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/response"
)

// Submit - Submit a new report
// @Summary Submit a report
// @Description Validate, redact, score and admit one report. Rate limit denials return 429 with the reason and next allowed time.
// @Tags Intake
// @Accept json
// @Produce json
// @Param body body submitReq true "Report submission"
// @Success 200 {object} submitResp
// @Failure 400 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/reports [post]
func (h *handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processSubmitRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.Submit: processSubmitRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.Submit(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.Submit: usecase Submit failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	if !output.Admitted {
		response.TooManyRequests(c, output.Denial.Reason, newDenialResp(*output.Denial))
		return
	}

	response.OK(c, submitResp{
		Case:      newCaseResp(output.Case),
		RiskLevel: output.RiskLevel,
	})
}

// Preview - Preview note redaction
// @Summary Preview redaction
// @Description Show what the engine will keep of a note before submission. Nothing is persisted.
// @Tags Intake
// @Accept json
// @Produce json
// @Param body body previewReq true "Note to preview"
// @Success 200 {object} previewResp
// @Failure 400 {object} response.Resp
// @Router /api/v1/reports/preview [post]
func (h *handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPreviewRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.Preview: processPreviewRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.PreviewRedaction(ctx, intake.PreviewInput{Note: req.Note})
	if err != nil {
		h.l.Errorf(ctx, "intake.delivery.http.Preview: usecase PreviewRedaction failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newPreviewResp(output))
}
