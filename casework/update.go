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

// DetailsUpdate carries the editable case fields. Nil pointers mean "leave
// unchanged"; set pointers must hold non-empty values.
type DetailsUpdate struct {
	Title       *string
	Description *string
	Type        *string
	Status      *string
}

var validStatuses = map[string]bool{
	models.StatusPendente:  true,
	models.StatusAtivo:     true,
	models.StatusArquivado: true,
	models.StatusSuspenso:  true,
	models.StatusJulgado:   true,
}

// UpdateCaseDetails edits the case's descriptive fields. Detail edits stay
// allowed on archived and judged cases so the record can be corrected.
func (e *Engine) UpdateCaseDetails(ctx context.Context, caseID string, actor models.Actor, upd DetailsUpdate) (*models.Case, error) {
	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := e.requireJudge(c, actor); err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		set["case.title"] = *upd.Title
		c.Details.Title = *upd.Title
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
		}
		set["case.description"] = *upd.Description
		c.Details.Description = *upd.Description
	}
	if upd.Type != nil {
		if *upd.Type == "" {
			return nil, fmt.Errorf("%w: type must not be empty", ErrInvalidInput)
		}
		set["case.type"] = *upd.Type
		c.Details.Type = *upd.Type
	}
	if upd.Status != nil {
		if !validStatuses[*upd.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *upd.Status)
		}
		set["case.status"] = *upd.Status
		c.Details.Status = *upd.Status
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	now := primitive.NewDateTimeFromTime(time.Now().UTC())
	set["case.updatedAt"] = now
	entry := models.TimelineEntry{
		Action: models.TimelineDetailsUpdated,
		By:     actor.ID,
		Status: c.Details.Status,
		At:     now,
	}
	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{"$set": set, "$push": bson.M{"case.timeline": entry}},
	); err != nil {
		return nil, fmt.Errorf("failed to update case details: %w", err)
	}
	c.Details.UpdatedAt = now
	c.Details.Timeline = append(c.Details.Timeline, entry)

	e.refreshPanel(ctx, c)
	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "edit_case", actor.Ref(),
		fmt.Sprintf("dados atualizados (status: %s)", c.Details.Status))
	return c, nil
}

// PartyUpdate carries the editable party fields. Nil pointers mean "leave
// unchanged"; set pointers must hold non-empty values.
type PartyUpdate struct {
	ActiveName     *string
	PassiveName    *string
	ActiveStateID  *string
	PassiveStateID *string
}

// UpdatePartyInfo edits the party records, recomputes the display list and
// records name and id changes as separate timeline entries.
func (e *Engine) UpdatePartyInfo(ctx context.Context, caseID string, actor models.Actor, upd PartyUpdate) (*models.Case, error) {
	c, err := e.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := e.requireJudge(c, actor); err != nil {
		return nil, err
	}

	namesChanged := false
	idsChanged := false
	if upd.ActiveName != nil {
		if *upd.ActiveName == "" {
			return nil, fmt.Errorf("%w: active party name must not be empty", ErrInvalidInput)
		}
		c.Details.Parties.Active.Name = *upd.ActiveName
		namesChanged = true
	}
	if upd.PassiveName != nil {
		if *upd.PassiveName == "" {
			return nil, fmt.Errorf("%w: passive party name must not be empty", ErrInvalidInput)
		}
		c.Details.Parties.Passive.Name = *upd.PassiveName
		namesChanged = true
	}
	if upd.ActiveStateID != nil {
		c.Details.Parties.Active.StateID = *upd.ActiveStateID
		idsChanged = true
	}
	if upd.PassiveStateID != nil {
		c.Details.Parties.Passive.StateID = *upd.PassiveStateID
		idsChanged = true
	}
	if !namesChanged && !idsChanged {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	now := primitive.NewDateTimeFromTime(time.Now().UTC())
	c.Details.PartiesDisplay = panel.BuildPartiesDisplay(c.Details.Parties)
	c.Details.UpdatedAt = now

	var entries []models.TimelineEntry
	if namesChanged {
		entries = append(entries, models.TimelineEntry{
			Action:  models.TimelineNamesUpdated,
			By:      actor.ID,
			Active:  c.Details.Parties.Active.Name,
			Passive: c.Details.Parties.Passive.Name,
			At:      now,
		})
	}
	if idsChanged {
		entries = append(entries, models.TimelineEntry{
			Action:  models.TimelineIDsUpdated,
			By:      actor.ID,
			Active:  c.Details.Parties.Active.StateID,
			Passive: c.Details.Parties.Passive.StateID,
			At:      now,
		})
	}

	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{
			"$set": bson.M{
				"case.parties":        c.Details.Parties,
				"case.partiesDisplay": c.Details.PartiesDisplay,
				"case.updatedAt":      now,
			},
			"$push": bson.M{"case.timeline": bson.M{"$each": entries}},
		},
	); err != nil {
		return nil, fmt.Errorf("failed to update party info: %w", err)
	}
	c.Details.Timeline = append(c.Details.Timeline, entries...)

	e.refreshPanel(ctx, c)
	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "edit_parties", actor.Ref(),
		fmt.Sprintf("Polo Ativo: %s | Polo Passivo: %s", c.Details.Parties.Active.Name, c.Details.Parties.Passive.Name))
	return c, nil
}
