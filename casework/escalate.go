package casework

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// EscalateInput carries the escalation request. TargetInstance zero means
// the next instance up; an explicit target may skip instances.
type EscalateInput struct {
	TargetInstance      int          `json:"targetInstance"`
	CustomMessage       string       `json:"customMessage"`
	IncludeActorMention bool         `json:"includeActorMention"`
	Actor               models.Actor `json:"actor"`
}

// EscalateCase promotes a case to a higher instance. The destination
// surface is created before any store write, so a failed surface creation
// leaves the case untouched; the judge slot is cleared in the same write
// that bumps the instance, since the new instance needs a new judge.
func (e *Engine) EscalateCase(ctx context.Context, caseID string, in EscalateInput) (*models.Case, error) {
	actor := in.Actor
	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if models.TerminalStatus(c.Details.Status) {
		return nil, ErrTerminalStatus
	}
	if !e.isAdmin(actor) && !actor.HasCredential(e.Config.RoleCredential("judge")) {
		return nil, fmt.Errorf("%w: escalation requires the judge credential", ErrPermissionDenied)
	}

	from := c.Details.Instance
	to := in.TargetInstance
	if to == 0 {
		to = from + 1
	}
	if to <= from {
		return nil, fmt.Errorf("%w: target instance %d must be above the current instance %d", ErrInvalidInput, to, from)
	}
	parentSurface := e.Config.InstanceSurface(to)
	if parentSurface == "" {
		return nil, fmt.Errorf("%w: no discussion area configured for instance %d", ErrConfigurationMissing, to)
	}

	// Gating side effect: without a destination surface there is no
	// escalation.
	newThreadID, err := e.Sink.CreateDiscussionSurface(ctx, parentSurface, c.Details.CaseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination surface for %s: %w", c.Details.CaseNumber, err)
	}

	oldThreadID := c.Details.ThreadID
	now := primitive.NewDateTimeFromTime(time.Now().UTC())
	entry := models.TimelineEntry{
		Action: models.TimelineEscalated,
		By:     actor.ID,
		From:   from,
		To:     to,
		At:     now,
	}
	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{
			"$set": bson.M{
				"case.instance":  to,
				"case.threadID":  newThreadID,
				"case.updatedAt": now,
			},
			"$unset": bson.M{"case.participants.judge": ""},
			"$push":  bson.M{"case.timeline": entry},
		},
	); err != nil {
		// The destination surface already exists but the case still points
		// at the old instance. Leave a loud trail for the operator.
		zap.S().Errorw("escalation store write failed after surface creation, case left on old instance",
			"caseNumber", c.Details.CaseNumber, "orphanSurface", newThreadID, "error", err)
		return nil, fmt.Errorf("failed to persist escalation: %w", err)
	}

	c.Details.Instance = to
	c.Details.ThreadID = newThreadID
	c.Details.UpdatedAt = now
	delete(c.Details.Participants, models.RoleJudge)
	c.Details.Timeline = append(c.Details.Timeline, entry)

	transcriptURL := ""
	if e.Blobs != nil {
		url, err := e.Blobs.UploadTranscript(ctx, c.Details.CaseNumber, BuildTranscript(c))
		if err != nil {
			zap.S().Errorw("failed to upload escalation transcript", "caseNumber", c.Details.CaseNumber, "error", err)
		} else {
			transcriptURL = url
		}
	}

	notice := panel.Message{Embeds: []panel.Embed{transferEmbed(c, from, to, transcriptURL, in.CustomMessage)}}
	if in.IncludeActorMention {
		notice.Content = fmt.Sprintf("<@%s>", actor.ID)
	}
	e.sendToSurface(ctx, newThreadID, notice, "transfer notice", c.Details.CaseNumber)
	e.refreshPanel(ctx, c)

	if oldThreadID != "" {
		e.sendToSurface(ctx, oldThreadID, notice, "transfer notice", c.Details.CaseNumber)
		if err := e.Sink.ArchiveSurface(ctx, oldThreadID); err != nil {
			zap.S().Errorw("failed to archive old case surface", "caseNumber", c.Details.CaseNumber, "surface", oldThreadID, "error", err)
		}
	}

	e.sendMovement(ctx, fmt.Sprintf("⚖️ Processo **%s** promovido para a %dª Instância.", c.Details.CaseNumber, to),
		fmt.Sprintf("Instância anterior: %dª. O cargo de Juiz foi reaberto para habilitação.", from))
	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "escalate", actor.Ref(),
		fmt.Sprintf("%dª → %dª instância", from, to))

	return c, nil
}

func transferEmbed(c *models.Case, from, to int, transcriptURL, customMessage string) panel.Embed {
	embed := panel.Embed{
		Title:       fmt.Sprintf("⚖️ Alteração de Instância — %s", c.Details.CaseNumber),
		Description: customMessage,
		Color:       "#e67e22",
		Fields: []panel.Field{
			{Name: "De", Value: fmt.Sprintf("%dª Instância", from), Inline: true},
			{Name: "Para", Value: fmt.Sprintf("%dª Instância", to), Inline: true},
			{Name: "Juiz", Value: "Cargo reaberto para habilitação", Inline: true},
		},
		Timestamp: true,
	}
	if transcriptURL != "" {
		embed.Fields = append(embed.Fields, panel.Field{Name: "Histórico", Value: transcriptURL})
	}
	return embed
}
