package http

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

// =====================================================
// Request DTOs
// =====================================================

type submitReq struct {
	County   string   `json:"county" binding:"required"`
	AgeBand  string   `json:"age_band" binding:"required"`
	RiskTags []string `json:"risk_tags"`
	Note     string   `json:"note"`
}

func (r submitReq) toInput() intake.SubmitInput {
	return intake.SubmitInput{
		County:   r.County,
		AgeBand:  r.AgeBand,
		RiskTags: r.RiskTags,
		Note:     r.Note,
	}
}

type previewReq struct {
	Note string `json:"note" binding:"required"`
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

type submitResp struct {
	Case      caseResp `json:"case"`
	RiskLevel string   `json:"risk_level"`
}

type denialResp struct {
	Reason        string     `json:"reason"`
	NextAllowedAt *time.Time `json:"next_allowed_at,omitempty"`
}

func newDenialResp(d intake.Denial) denialResp {
	return denialResp{
		Reason:        d.Reason,
		NextAllowedAt: d.NextAllowedAt,
	}
}

type previewResp struct {
	Redacted      string   `json:"redacted"`
	Labels        []string `json:"labels"`
	HasRedactions bool     `json:"has_redactions"`
}

func newPreviewResp(o intake.PreviewOutput) previewResp {
	return previewResp{
		Redacted:      o.Redacted,
		Labels:        o.Labels,
		HasRedactions: o.HasRedactions,
	}
}
