package casework

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// IntimationInput identifies the notified party and the terms.
type IntimationInput struct {
	TargetID     string
	TargetTag    string
	Reason       string
	DeadlineDays int
	Actor        models.Actor
}

// IssueIntimation publishes a formal notice with a deadline. The
// intimations surface must be configured; the deadline is computed from the
// issue time, never stored client-side.
func (e *Engine) IssueIntimation(ctx context.Context, caseID string, in IntimationInput) (*models.Case, error) {
	if in.TargetID == "" {
		return nil, fmt.Errorf("%w: intimation target is required", ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: intimation reason is required", ErrInvalidInput)
	}
	if in.DeadlineDays <= 0 {
		return nil, fmt.Errorf("%w: deadline must be a positive number of days", ErrInvalidInput)
	}

	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if models.TerminalStatus(c.Details.Status) {
		return nil, ErrTerminalStatus
	}
	if err := e.requireJudge(c, in.Actor); err != nil {
		return nil, err
	}
	if e.Config.Surfaces.Intimations == "" {
		return nil, fmt.Errorf("%w: intimations surface is not configured", ErrConfigurationMissing)
	}

	now := time.Now().UTC()
	deadline := now.AddDate(0, 0, in.DeadlineDays)
	nowDT := primitive.NewDateTimeFromTime(now)
	entry := models.TimelineEntry{
		Action:       models.TimelineIntimationIssued,
		By:           in.Actor.ID,
		Target:       in.TargetID,
		DeadlineDays: in.DeadlineDays,
		At:           nowDT,
	}
	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{
			"$set":  bson.M{"case.updatedAt": nowDT},
			"$push": bson.M{"case.timeline": entry},
		},
	); err != nil {
		return nil, fmt.Errorf("failed to record intimation: %w", err)
	}
	c.Details.UpdatedAt = nowDT
	c.Details.Timeline = append(c.Details.Timeline, entry)

	target := models.Participant{ActorID: in.TargetID, DisplayTag: in.TargetTag}
	notice := panel.Message{Embeds: []panel.Embed{{
		Title: fmt.Sprintf("📨 Intimação — %s", c.Details.CaseNumber),
		Color: "#e74c3c",
		Fields: []panel.Field{
			{Name: "Intimado", Value: panel.FormatParticipant(target), Inline: true},
			{Name: "Prazo", Value: fmt.Sprintf("%d dia(s) — até %s", in.DeadlineDays, deadline.Format("02/01/2006 15:04")), Inline: true},
			{Name: "Motivo", Value: in.Reason},
		},
		Timestamp: true,
	}}}
	e.sendToSurface(ctx, e.Config.Surfaces.Intimations, notice, "intimation notice", c.Details.CaseNumber)
	e.sendToSurface(ctx, c.Details.ThreadID, notice, "intimation notice", c.Details.CaseNumber)

	if e.Mailer != nil {
		targetTag := in.TargetTag
		if targetTag == "" {
			targetTag = in.TargetID
		}
		e.Mailer.SendIntimationCopy(c.Details.CaseNumber, targetTag, in.Reason, in.DeadlineDays)
	}

	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "emit_intimation", in.Actor.Ref(),
		fmt.Sprintf("intimado %s, prazo %d dia(s): %s", panel.FormatParticipant(target), in.DeadlineDays, in.Reason))
	return c, nil
}
