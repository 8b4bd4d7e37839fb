package http

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

// =====================================================
// Request DTOs
// =====================================================

type listCasesReq struct {
	County   string `form:"county"`
	Status   string `form:"status"`
	MinScore int    `form:"min_score"`
	Page     int    `form:"page"`
	Limit    int64  `form:"limit"`
}

func (r listCasesReq) toInput() cases.ListCasesInput {
	return cases.ListCasesInput{
		County:   r.County,
		Status:   r.Status,
		MinScore: r.MinScore,
		PagQuery: paginator.PaginateQuery{
			Page:  r.Page,
			Limit: r.Limit,
		},
	}
}

type recordActionReq struct {
	ActionType string `json:"action_type" binding:"required"`
	Note       string `json:"note"`
}

type closeReq struct {
	Note string `json:"note"`
}

type unfoundedReq struct {
	Note string `json:"note"`
}

// =====================================================
// Response DTOs
// =====================================================

type caseResp struct {
	ID           string    `json:"id"`
	CaseCode     string    `json:"case_code"`
	ReporterID   string    `json:"reporter_id"`
	County       string    `json:"county"`
	AgeBand      string    `json:"age_band"`
	RiskTags     []string  `json:"risk_tags"`
	RedactedNote string    `json:"redacted_note"`
	RiskScore    int       `json:"risk_score"`
	RiskReasons  []string  `json:"risk_reasons"`
	Status       string    `json:"status"`
	IsSpike      bool      `json:"is_spike"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newCaseResp(c model.Case) caseResp {
	return caseResp{
		ID:           c.ID,
		CaseCode:     c.CaseCode,
		ReporterID:   c.ReporterID,
		County:       c.County,
		AgeBand:      c.AgeBand,
		RiskTags:     c.RiskTags,
		RedactedNote: c.RedactedNote,
		RiskScore:    c.RiskScore,
		RiskReasons:  c.RiskReasons,
		Status:       c.Status,
		IsSpike:      c.IsSpike,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type listCasesResp struct {
	Cases []caseResp                  `json:"cases"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newListCasesResp(o cases.ListCasesOutput) listCasesResp {
	resp := listCasesResp{
		Cases: make([]caseResp, len(o.Cases)),
		Meta:  o.Paginator.ToResponse(),
	}
	for i, c := range o.Cases {
		resp.Cases[i] = newCaseResp(c)
	}
	return resp
}
