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

// enrollCredentialKey maps a role slot to the config key of the credential
// allowed to claim it. Admins may always claim.
func enrollCredentialKey(roleKey string) string {
	if roleKey == models.RoleJudge {
		return "judge"
	}
	return "defender"
}

// EnrollParticipant claims a role slot for the actor. The claim is a
// conditional store write, so two concurrent claims of the same slot can
// never both win; the loser gets ErrRoleTaken (or ErrAlreadyEnrolled when
// re-claiming their own slot). The claim that fills the last open slot
// posts the all-enrolled announcement, exactly once.
func (e *Engine) EnrollParticipant(ctx context.Context, caseID, roleKey string, actor models.Actor) (*models.Case, error) {
	if _, ok := panel.PanelRoles[roleKey]; !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, roleKey)
	}

	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if models.TerminalStatus(c.Details.Status) {
		return nil, ErrTerminalStatus
	}

	if !e.isAdmin(actor) && !actor.HasCredential(e.Config.RoleCredential(enrollCredentialKey(roleKey))) {
		return nil, fmt.Errorf("%w: missing credential for role %s", ErrPermissionDenied, roleKey)
	}

	if existing, ok := c.Details.Participants[roleKey]; ok {
		if existing.ActorID == actor.ID {
			return nil, ErrAlreadyEnrolled
		}
		return nil, ErrRoleTaken
	}

	p := models.Participant{ActorID: actor.ID, DisplayTag: actor.Tag}
	entry := models.TimelineEntry{
		Action: models.TimelineEnable,
		By:     actor.ID,
		Role:   roleKey,
		At:     primitive.NewDateTimeFromTime(time.Now().UTC()),
	}
	claimed, err := e.Cases.ClaimRole(ctx, c.ID, roleKey, p, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to claim role: %w", err)
	}

	// Re-read regardless of outcome: a lost claim means someone beat us to
	// the slot between our read and write.
	c, err = e.Cases.FindOne(ctx, bson.M{"_id": c.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, caseID)
	}
	if !claimed {
		if existing, ok := c.Details.Participants[roleKey]; ok && existing.ActorID == actor.ID {
			return nil, ErrAlreadyEnrolled
		}
		return nil, ErrRoleTaken
	}

	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "enable_participant", actor.Ref(),
		fmt.Sprintf("%s habilitado como %s", panel.FormatParticipant(p), panel.PanelRoles[roleKey].Label))

	if panel.AllAssigned(c.Details.Participants) && lastEnableRole(c.Details.Timeline) == roleKey {
		e.announceAllEnrolled(ctx, c)
	}
	e.refreshPanel(ctx, c)

	return c, nil
}

// lastEnableRole returns the role of the most recent enable entry. Timeline
// appends ride the claim write itself, so the last enable entry belongs to
// the claim that filled the final slot.
func lastEnableRole(timeline []models.TimelineEntry) string {
	for i := len(timeline) - 1; i >= 0; i-- {
		if timeline[i].Action == models.TimelineEnable {
			return timeline[i].Role
		}
	}
	return ""
}

func (e *Engine) announceAllEnrolled(ctx context.Context, c *models.Case) {
	if c.Details.ThreadID == "" {
		return
	}
	lines := ""
	for _, key := range models.RoleKeys {
		lines += fmt.Sprintf("**%s**: %s\n", panel.PanelRoles[key].Label, panel.FormatParticipant(c.Details.Participants[key]))
	}
	msg := panel.Message{Embeds: []panel.Embed{{
		Title:       "✅ Todas as partes habilitadas",
		Description: fmt.Sprintf("O processo **%s** está pronto para andamento.\n\n%s", c.Details.CaseNumber, lines),
		Color:       "#2ecc71",
		Timestamp:   true,
	}}}
	if _, err := e.Sink.Send(ctx, c.Details.ThreadID, msg); err != nil {
		zap.S().Errorw("failed to post all-enrolled announcement", "caseNumber", c.Details.CaseNumber, "error", err)
	}
}
