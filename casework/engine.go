// Package casework implements the case lifecycle: creation, enrollment,
// escalation, edits, intimations, hearings and document filing. It is the
// only writer of case state; everything else renders or queries.
package casework

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/blob"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/notify"
	"github.com/dojsystem/process-api/panel"
)

// AuditRecorder records one audit entry per mutating operation.
type AuditRecorder interface {
	Record(ctx context.Context, caseID primitive.ObjectID, caseNumber, action string, actor models.ActorRef, details string)
}

// IntimationMailer mirrors an issued intimation to the registry mailbox.
type IntimationMailer interface {
	SendIntimationCopy(caseNumber, targetTag, reason string, deadlineDays int)
}

// Engine executes case operations. All collaborators are injected; the
// engine never reaches for globals besides the logger.
type Engine struct {
	Cases     databases.CaseDatabase
	Hearings  databases.HearingDatabase
	Documents databases.DocumentDatabase
	Reminders databases.ReminderDatabase

	Sink   notify.Sink
	Blobs  blob.Store
	Audit  AuditRecorder
	Mailer IntimationMailer

	Config config.Config
}

// CreateCaseInput carries the fields needed to open a new case.
type CreateCaseInput struct {
	ActiveName     string
	ActiveStateID  string
	PassiveName    string
	PassiveStateID string
	Description    string
	Type           string
	Actor          models.Actor
}

// CreateCase allocates a case number, persists the new case and opens its
// discussion surface with the enrollment panel. Notification failures are
// logged and do not fail the creation.
func (e *Engine) CreateCase(ctx context.Context, in CreateCaseInput) (*models.Case, error) {
	if in.ActiveName == "" || in.PassiveName == "" {
		return nil, fmt.Errorf("%w: both party names are required", ErrInvalidInput)
	}
	if in.Actor.ID == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	year := now.Year()
	seq, err := e.Cases.NextCaseSequence(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate case number: %w", err)
	}
	caseNumber := fmt.Sprintf("PROC-%d-%04d", year, seq)
	title := fmt.Sprintf("Processo (%s) %s X %s", caseNumber, in.ActiveName, in.PassiveName)

	parties := models.Parties{
		Active:  models.Party{Name: in.ActiveName, StateID: in.ActiveStateID},
		Passive: models.Party{Name: in.PassiveName, StateID: in.PassiveStateID},
	}

	nowDT := primitive.NewDateTimeFromTime(now)
	c := &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber:     caseNumber,
			Title:          title,
			Description:    in.Description,
			Type:           in.Type,
			Status:         models.StatusAtivo,
			Instance:       1,
			Parties:        parties,
			PartiesDisplay: panel.BuildPartiesDisplay(parties),
			Participants:   map[string]models.Participant{},
			Timeline: []models.TimelineEntry{{
				Action: models.TimelineCreated,
				By:     in.Actor.ID,
				At:     nowDT,
			}},
			CreatedBy: in.Actor.Ref(),
			CreatedAt: nowDT,
			UpdatedAt: nowDT,
		},
	}

	if _, err := e.Cases.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to insert case: %w", err)
	}

	// Side effects past this point never fail the creation.
	if parentSurface := e.Config.InstanceSurface(1); parentSurface != "" {
		threadID, err := e.Sink.CreateDiscussionSurface(ctx, parentSurface, caseNumber)
		if err != nil {
			zap.S().Errorw("failed to create case discussion surface", "caseNumber", caseNumber, "error", err)
		} else {
			c.Details.ThreadID = threadID
			if _, err := e.Cases.UpdateOne(ctx,
				bson.M{"_id": c.ID},
				bson.M{"$set": bson.M{"case.threadID": threadID}},
			); err != nil {
				zap.S().Errorw("failed to persist thread linkage", "caseNumber", caseNumber, "error", err)
			}
			if _, err := e.Sink.Send(ctx, threadID, panel.BuildPanelMessage(c)); err != nil {
				zap.S().Errorw("failed to post enrollment panel", "caseNumber", caseNumber, "error", err)
			}
		}
	} else {
		zap.S().Warnw("no discussion area configured for instance 1, case created without surface", "caseNumber", caseNumber)
	}

	e.sendMovement(ctx, fmt.Sprintf("📂 Processo **%s** distribuído na 1ª Instância.", caseNumber),
		fmt.Sprintf("%s\nPolo Ativo: %s\nPolo Passivo: %s", title, in.ActiveName, in.PassiveName))
	e.Audit.Record(ctx, c.ID, caseNumber, "create_case", in.Actor.Ref(), title)

	return c, nil
}

// loadCase resolves an id string into the stored case.
func (e *Engine) loadCase(ctx context.Context, caseID string) (*models.Case, error) {
	oid, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed case id %q", ErrInvalidInput, caseID)
	}
	c, err := e.Cases.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, caseID)
	}
	return c, nil
}

// isAdmin reports whether the actor holds the configured admin credential.
func (e *Engine) isAdmin(actor models.Actor) bool {
	return actor.HasCredential(e.Config.RoleCredential("admin"))
}

// requireJudge admits the enrolled judge of the case and admins.
func (e *Engine) requireJudge(c *models.Case, actor models.Actor) error {
	if e.isAdmin(actor) {
		return nil
	}
	judge, ok := c.Details.Participants[models.RoleJudge]
	if ok && judge.ActorID == actor.ID {
		return nil
	}
	return fmt.Errorf("%w: only the enrolled judge may perform this action", ErrPermissionDenied)
}

// requireParticipant admits any enrolled participant of the case and admins.
func (e *Engine) requireParticipant(c *models.Case, actor models.Actor) error {
	if e.isAdmin(actor) {
		return nil
	}
	for _, p := range c.Details.Participants {
		if p.ActorID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: only enrolled participants may perform this action", ErrPermissionDenied)
}

// sendToSurface posts best-effort to a named surface; empty surface is a
// silent no-op.
func (e *Engine) sendToSurface(ctx context.Context, surfaceID string, msg panel.Message, what, caseNumber string) {
	if surfaceID == "" {
		return
	}
	if _, err := e.Sink.Send(ctx, surfaceID, msg); err != nil {
		zap.S().Errorw("failed to send "+what, "caseNumber", caseNumber, "surface", surfaceID, "error", err)
	}
}

// sendMovement posts a notice to the movements surface.
func (e *Engine) sendMovement(ctx context.Context, title, body string) {
	if e.Config.Surfaces.Movements == "" {
		return
	}
	msg := panel.Message{Embeds: []panel.Embed{{
		Title:       title,
		Description: body,
		Color:       "#2ecc71",
		Timestamp:   true,
	}}}
	if _, err := e.Sink.Send(ctx, e.Config.Surfaces.Movements, msg); err != nil {
		zap.S().Errorw("failed to post movement notice", "title", title, "error", err)
	}
}

// refreshPanel re-renders the enrollment panel on the case surface.
func (e *Engine) refreshPanel(ctx context.Context, c *models.Case) {
	if c.Details.ThreadID == "" {
		return
	}
	if _, err := e.Sink.Send(ctx, c.Details.ThreadID, panel.BuildPanelMessage(c)); err != nil {
		zap.S().Errorw("failed to refresh case panel", "caseNumber", c.Details.CaseNumber, "error", err)
	}
}
