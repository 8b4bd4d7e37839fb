package http

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

// =====================================================
// Request DTOs
// =====================================================

type listEntriesReq struct {
	CaseID     string `form:"case_id"`
	ActionType string `form:"action_type"`
	ActorID    string `form:"actor_id"`
	Page       int    `form:"page"`
	Limit      int64  `form:"limit"`
}

func (r listEntriesReq) toInput() audit.ListEntriesInput {
	return audit.ListEntriesInput{
		CaseID:     r.CaseID,
		ActionType: r.ActionType,
		ActorID:    r.ActorID,
		PagQuery: paginator.PaginateQuery{
			Page:  r.Page,
			Limit: r.Limit,
		},
	}
}

// =====================================================
// Response DTOs
// =====================================================

type entryResp struct {
	ID         string                 `json:"id"`
	Seq        int64                  `json:"seq"`
	CaseID     string                 `json:"case_id"`
	ActionType string                 `json:"action_type"`
	ActorID    string                 `json:"actor_id"`
	Details    map[string]interface{} `json:"details,omitempty"`
	PrevHash   string                 `json:"prev_hash"`
	Hash       string                 `json:"hash"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newEntryResp(e model.AuditEntry) entryResp {
	return entryResp{
		ID:         e.ID,
		Seq:        e.Seq,
		CaseID:     e.CaseID,
		ActionType: e.ActionType,
		ActorID:    e.ActorID,
		Details:    e.Details,
		PrevHash:   e.PrevHash,
		Hash:       e.Hash,
		CreatedAt:  e.CreatedAt,
	}
}

type listEntriesResp struct {
	Entries []entryResp                 `json:"entries"`
	Meta    paginator.PaginatorResponse `json:"meta"`
}

func newListEntriesResp(o audit.ListEntriesOutput) listEntriesResp {
	resp := listEntriesResp{
		Entries: make([]entryResp, len(o.Entries)),
		Meta:    o.Paginator.ToResponse(),
	}
	for i, e := range o.Entries {
		resp.Entries[i] = newEntryResp(e)
	}
	return resp
}

type verifyResp struct {
	Valid          bool   `json:"valid"`
	Checked        int64  `json:"checked"`
	FirstBrokenID  string `json:"first_broken_id,omitempty"`
	FirstBrokenSeq int64  `json:"first_broken_seq,omitempty"`
}

func newVerifyResp(r audit.VerifyResult) verifyResp {
	return verifyResp{
		Valid:          r.Valid,
		Checked:        r.Checked,
		FirstBrokenID:  r.FirstBrokenID,
		FirstBrokenSeq: r.FirstBrokenSeq,
	}
}

type reconcileResp struct {
	Pending  int `json:"pending"`
	Repaired int `json:"repaired"`
	Resolved int `json:"resolved"`
}
