package casework

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// FileDocument protocols a document on a case: the content goes to the
// blob store, the reference to the documents collection, and the filing to
// the case timeline and surface.
func (e *Engine) FileDocument(ctx context.Context, caseID string, actor models.Actor, filename string, r io.Reader) (*models.Document, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if e.Blobs == nil {
		return nil, fmt.Errorf("%w: blob storage is not configured", ErrConfigurationMissing)
	}

	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if models.TerminalStatus(c.Details.Status) {
		return nil, ErrTerminalStatus
	}
	if err := e.requireParticipant(c, actor); err != nil {
		return nil, err
	}

	url, err := e.Blobs.UploadDocument(ctx, c.Details.CaseNumber, filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	now := primitive.NewDateTimeFromTime(time.Now().UTC())
	doc := &models.Document{
		ID:         primitive.NewObjectID(),
		CaseID:     c.ID,
		Filename:   filename,
		URL:        url,
		UploadedBy: actor.Ref(),
		UploadedAt: now,
	}
	if _, err := e.Documents.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert document record: %w", err)
	}

	entry := models.TimelineEntry{
		Action: models.TimelineDocumentProtocols,
		By:     actor.ID,
		Target: filename,
		At:     now,
	}
	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{
			"$set":  bson.M{"case.updatedAt": now},
			"$push": bson.M{"case.timeline": entry},
		},
	); err != nil {
		return nil, fmt.Errorf("failed to record document filing: %w", err)
	}

	notice := panel.Message{Embeds: []panel.Embed{{
		Title: fmt.Sprintf("📎 Documento Protocolado — %s", c.Details.CaseNumber),
		Color: "#1abc9c",
		Fields: []panel.Field{
			{Name: "Arquivo", Value: fmt.Sprintf("[%s](%s)", filename, url), Inline: true},
			{Name: "Protocolado por", Value: orDefault(actor.Tag, actor.ID), Inline: true},
		},
		Timestamp: true,
	}}}
	e.sendToSurface(ctx, c.Details.ThreadID, notice, "document notice", c.Details.CaseNumber)

	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "protocol_document", actor.Ref(), filename)
	return doc, nil
}

// ListCasesForJudge returns the non-terminal cases whose judge slot is held
// by the actor, newest first.
func (e *Engine) ListCasesForJudge(ctx context.Context, actorID string) ([]models.Case, error) {
	cases, err := e.Cases.Find(ctx, bson.M{
		"case.participants.judge.id": actorID,
		"case.status":                bson.M{"$nin": []string{models.StatusArquivado, models.StatusJulgado}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list judge cases: %w", err)
	}
	return cases, nil
}
