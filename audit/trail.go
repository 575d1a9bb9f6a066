// Package audit records who did what on which case, durably in the database
// and best-effort on the audit surface.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/notify"
	"github.com/dojsystem/process-api/panel"
)

// Trail writes audit entries. The database row is the source of truth; the
// surface embed is a mirror and its failure never propagates.
type Trail struct {
	DB     databases.ActivityLogDatabase
	Sink   notify.Sink
	Config config.Config
}

// Record persists one audit entry and mirrors it to the audit surface.
func (t Trail) Record(ctx context.Context, caseID primitive.ObjectID, caseNumber, action string, actor models.ActorRef, details string) {
	now := primitive.NewDateTimeFromTime(time.Now().UTC())
	entry := models.ActivityLog{
		ID:        primitive.NewObjectID(),
		CaseID:    caseID,
		Action:    action,
		AuthorID:  actor.ID,
		AuthorTag: actor.Tag,
		Details:   details,
		CreatedAt: now,
	}
	if _, err := t.DB.InsertOne(ctx, entry); err != nil {
		zap.S().Errorw("failed to persist audit entry", "caseNumber", caseNumber, "action", action, "error", err)
	}

	if t.Sink == nil || t.Config.Surfaces.Audit == "" {
		return
	}
	msg := panel.Message{Embeds: []panel.Embed{{
		Title: fmt.Sprintf("📋 %s", action),
		Color: "#3498db",
		Fields: []panel.Field{
			{Name: "Processo", Value: caseNumber, Inline: true},
			{Name: "Autor", Value: actorDisplay(actor), Inline: true},
			{Name: "Detalhes", Value: details},
		},
		Timestamp: true,
	}}}
	if _, err := t.Sink.Send(ctx, t.Config.Surfaces.Audit, msg); err != nil {
		zap.S().Warnw("failed to mirror audit entry", "caseNumber", caseNumber, "action", action, "error", err)
	}
}

func actorDisplay(a models.ActorRef) string {
	if a.Tag != "" {
		return fmt.Sprintf("%s (%s)", a.Tag, a.ID)
	}
	return a.ID
}
