package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	casesrepo "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/redaction"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/risk"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/rabbitmq"
)

// Submit runs the full intake pipeline. The raw note never leaves this
// function: only the redacted text is persisted, published, or echoed
// back.
func (uc *implUseCase) Submit(ctx context.Context, sc model.Scope, input intake.SubmitInput) (intake.SubmitOutput, error) {
	if err := validate(input); err != nil {
		return intake.SubmitOutput{}, err
	}

	redacted := redaction.Redact(input.Note)
	assessment := risk.Score(input.AgeBand, input.RiskTags, redacted)
	now := time.Now()

	decision, err := uc.ratelimit.Admit(ctx, ratelimit.AdmitInput{UserID: sc.UserID, Now: now})
	if err != nil {
		return intake.SubmitOutput{}, err
	}
	if !decision.Allowed {
		return denied(decision), nil
	}

	c := model.Case{
		ID:           uuid.New().String(),
		CaseCode:     generateCaseCode(input.County),
		ReporterID:   sc.UserID,
		County:       input.County,
		AgeBand:      input.AgeBand,
		RiskTags:     input.RiskTags,
		RedactedNote: redacted,
		RiskScore:    assessment.Score,
		RiskReasons:  assessment.Reasons,
		Status:       model.CaseStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	out, err := uc.persist(ctx, sc, &c, assessment, now)
	if err != nil || !out.Admitted {
		return out, err
	}

	uc.publishCreated(ctx, c)
	if c.RiskScore >= uc.config.UrgentScore {
		uc.enqueueUrgent(ctx, c)
	}
	return out, nil
}

// persist writes the case, its created audit entry, and the reporter's
// admission counters in one transaction.
func (uc *implUseCase) persist(ctx context.Context, sc model.Scope, c *model.Case, assessment risk.Assessment, now time.Time) (intake.SubmitOutput, error) {
	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return intake.SubmitOutput{}, intake.ErrSubmitFailed
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := uc.repo.InsertCase(ctx, tx, casesrepo.InsertCaseOptions{
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
		CreatedAt:    now,
	}); err != nil {
		return intake.SubmitOutput{}, intake.ErrSubmitFailed
	}

	if _, err := uc.auditUC.AppendInTx(ctx, tx, audit.AppendInput{
		CaseID:     c.ID,
		ActionType: model.ActionCreated,
		ActorID:    sc.UserID,
		Details: map[string]interface{}{
			"case_code":  c.CaseCode,
			"county":     c.County,
			"risk_score": c.RiskScore,
		},
		Now: now,
	}); err != nil {
		uc.l.Errorf(ctx, "intake.usecase.persist: Failed to append created entry for case %s: %v", c.ID, err)
		if rbErr := tx.Rollback(); rbErr != nil {
			uc.recordReconciliation(ctx, sc, c, "audit append failed and rollback failed: "+rbErr.Error())
			committed = true // nothing left to roll back
			return intake.SubmitOutput{}, intake.ErrOutcomeUnknown
		}
		committed = true
		return intake.SubmitOutput{}, intake.ErrSubmitFailed
	}

	if err := uc.ratelimit.RecordAdmissionInTx(ctx, tx, ratelimit.RecordAdmissionInput{
		UserID: sc.UserID,
		Now:    now,
	}); err != nil {
		if errors.Is(err, ratelimit.ErrNotAdmitted) {
			// A concurrent submission won the race between the early
			// check and this one. Nothing persists for the loser.
			_ = tx.Rollback()
			committed = true
			return uc.lateDenial(ctx, sc, now)
		}
		return intake.SubmitOutput{}, intake.ErrSubmitFailed
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "intake.usecase.persist: Failed to commit case %s: %v", c.ID, err)
		committed = true
		uc.recordReconciliation(ctx, sc, c, "commit outcome unknown: "+err.Error())
		return intake.SubmitOutput{}, intake.ErrOutcomeUnknown
	}
	committed = true

	return intake.SubmitOutput{
		Admitted:  true,
		Case:      *c,
		RiskLevel: risk.Level(assessment.Score),
	}, nil
}

// lateDenial re-reads the limits to give the racing loser the same
// structured denial a front-door rejection gets.
func (uc *implUseCase) lateDenial(ctx context.Context, sc model.Scope, now time.Time) (intake.SubmitOutput, error) {
	decision, err := uc.ratelimit.Admit(ctx, ratelimit.AdmitInput{UserID: sc.UserID, Now: now})
	if err != nil {
		return intake.SubmitOutput{}, err
	}
	if decision.Allowed {
		// The window reopened between the two checks. Treat it as a
		// denial anyway; the client retries.
		decision.Reason = ratelimit.ReasonMinInterval
	}
	decision.Allowed = false
	return denied(decision), nil
}

func (uc *implUseCase) recordReconciliation(ctx context.Context, sc model.Scope, c *model.Case, reason string) {
	if err := uc.auditUC.RecordReconciliation(ctx, audit.RecordReconciliationInput{
		CaseID:     c.ID,
		ActionType: model.ActionCreated,
		ActorID:    sc.UserID,
		Reason:     reason,
	}); err != nil {
		uc.l.Errorf(ctx, "intake.usecase.recordReconciliation: Failed to file record for case %s: %v", c.ID, err)
	}
}

func (uc *implUseCase) publishCreated(ctx context.Context, c model.Case) {
	if uc.producer == nil {
		return
	}

	event := model.CaseEvent{
		EventType: model.EventCaseCreated,
		CaseID:    c.ID,
		CaseCode:  c.CaseCode,
		County:    c.County,
		RiskTags:  c.RiskTags,
		RiskScore: c.RiskScore,
		CreatedAt: c.CreatedAt,
	}
	raw, err := json.Marshal(event)
	if err != nil {
		uc.l.Errorf(ctx, "intake.usecase.publishCreated: Failed to marshal event for case %s: %v", c.ID, err)
		return
	}
	if err := uc.producer.Publish([]byte(c.ID), raw); err != nil {
		uc.l.Warnf(ctx, "intake.usecase.publishCreated: Failed to publish event for case %s: %v", c.ID, err)
	}
}

func (uc *implUseCase) enqueueUrgent(ctx context.Context, c model.Case) {
	if uc.rabbitCh == nil {
		return
	}

	payload, err := json.Marshal(intake.UrgentNotification{
		CaseID:    c.ID,
		CaseCode:  c.CaseCode,
		County:    c.County,
		RiskScore: c.RiskScore,
		RiskLevel: risk.Level(c.RiskScore),
		CreatedAt: c.CreatedAt,
	})
	if err != nil {
		uc.l.Errorf(ctx, "intake.usecase.enqueueUrgent: Failed to marshal notification for case %s: %v", c.ID, err)
		return
	}

	err = uc.rabbitCh.Publish(ctx, rabbitmq.PublishArgs{
		Exchange:   uc.config.RabbitExchange,
		RoutingKey: uc.config.RabbitRoutingKey,
		Msg: rabbitmq.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         payload,
		},
	})
	if err != nil {
		uc.l.Warnf(ctx, "intake.usecase.enqueueUrgent: Failed to enqueue notification for case %s: %v", c.ID, err)
	}
}

// PreviewRedaction lets the submitter see the redacted note and which
// categories fired before submitting.
func (uc *implUseCase) PreviewRedaction(ctx context.Context, input intake.PreviewInput) (intake.PreviewOutput, error) {
	redacted := redaction.Redact(input.Note)
	return intake.PreviewOutput{
		Redacted:      redacted,
		Labels:        redaction.Summarize(input.Note, redacted),
		HasRedactions: redaction.HasRedactions(input.Note, redacted),
	}, nil
}

func validate(input intake.SubmitInput) error {
	if strings.TrimSpace(input.County) == "" {
		return intake.ErrCountyRequired
	}
	if !risk.ValidAgeBand(input.AgeBand) {
		return intake.ErrInvalidAgeBand
	}
	for _, tag := range input.RiskTags {
		if !risk.ValidTag(tag) {
			return intake.ErrInvalidRiskTag
		}
	}
	return nil
}

func denied(decision ratelimit.Decision) intake.SubmitOutput {
	return intake.SubmitOutput{
		Admitted: false,
		Denial: &intake.Denial{
			Reason:        decision.Reason,
			NextAllowedAt: decision.NextAllowedAt,
		},
	}
}

const caseCodeChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateCaseCode builds SG-<County3>-<Base36> codes, e.g. SG-KIS-4F7Q.
func generateCaseCode(county string) string {
	prefix := strings.ToUpper(county)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = caseCodeChars[rand.IntN(len(caseCodeChars))]
	}
	return "SG-" + prefix + "-" + string(suffix)
}
