package cases

import (
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

type ListCasesInput struct {
	County   string
	Status   string
	MinScore int
	PagQuery paginator.PaginateQuery
}

type ListCasesOutput struct {
	Cases     []model.Case
	Paginator paginator.Paginator
}

type RecordActionInput struct {
	CaseID     string
	ActionType string
	Note       string
}

type CloseInput struct {
	CaseID string
	Note   string
}

type MarkUnfoundedInput struct {
	CaseID string
	Note   string
}

// followUpActions are the action types officers may record while a
// case is being worked.
var followUpActions = map[string]struct{}{
	model.ActionCallGuardian:      {},
	model.ActionSchoolVisitBooked: {},
	model.ActionEscortToClinic:    {},
}

// ValidFollowUpAction reports whether t may be recorded via RecordAction.
func ValidFollowUpAction(t string) bool {
	_, ok := followUpActions[t]
	return ok
}
