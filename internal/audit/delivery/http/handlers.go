package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/response"
)

// ListEntries - List audit entries
// @Summary List audit entries
// @Description List audit chain entries newest first, filtered by case, action type or actor.
// @Tags Audit
// @Produce json
// @Param case_id query string false "Case ID filter"
// @Param action_type query string false "Action type filter"
// @Param actor_id query string false "Actor ID filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listEntriesResp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/audit/entries [get]
func (h *handler) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListEntriesRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.ListEntries: processListEntriesRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	output, err := h.uc.ListEntries(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.ListEntries: usecase ListEntries failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newListEntriesResp(output))
}

// VerifyChain - Verify the audit chain
// @Summary Verify the audit chain
// @Description Walk the whole chain and recompute every hash. A broken chain returns 500 and pages the operators.
// @Tags Audit
// @Produce json
// @Success 200 {object} verifyResp
// @Failure 500 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/audit/verify [get]
func (h *handler) VerifyChain(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.VerifyChain(ctx)
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.VerifyChain: usecase VerifyChain failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, newVerifyResp(output))
}

// TrustSeal - Public integrity summary
// @Summary Trust seal
// @Description Return the latest chain hash and the number of actions recorded this month. Public, no case data.
// @Tags Audit
// @Produce json
// @Success 200 {object} audit.TrustSeal
// @Failure 503 {object} response.Resp
// @Router /api/v1/trust-seal [get]
func (h *handler) TrustSeal(c *gin.Context) {
	ctx := c.Request.Context()

	seal, err := h.uc.TrustSeal(ctx)
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.TrustSeal: usecase TrustSeal failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, seal)
}

// Reconcile - Process pending reconciliations
// @Summary Reconcile missing audit entries
// @Description Append the missing entries for cases whose audit write could not be completed, and mark the records resolved.
// @Tags Audit
// @Produce json
// @Success 200 {object} reconcileResp
// @Failure 503 {object} response.Resp
// @Router /internal/audit/reconcile [post]
func (h *handler) Reconcile(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Reconcile(ctx)
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.Reconcile: usecase Reconcile failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, reconcileResp{
		Pending:  output.Pending,
		Repaired: output.Repaired,
		Resolved: output.Resolved,
	})
}
