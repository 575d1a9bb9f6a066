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

// hearingLayout is the wire format the gateway collects from users. All
// hearing times are UTC.
const hearingLayout = "02/01/2006 15:04"

// DefaultHearingMinutes applies when no duration is given.
const DefaultHearingMinutes = 60

// HearingInput carries the scheduling request.
type HearingInput struct {
	Type            string
	Date            string // DD/MM/YYYY
	Time            string // HH:MM
	Location        string
	DurationMinutes int
	Actor           models.Actor
}

// ScheduleHearing records a hearing, updates the case's next-hearing
// metadata and registers the 24h and 1h reminders. Reminder marks already
// in the past are skipped.
func (e *Engine) ScheduleHearing(ctx context.Context, caseID string, in HearingInput) (*models.Hearing, error) {
	if in.Type == "" {
		return nil, fmt.Errorf("%w: hearing type is required", ErrInvalidInput)
	}
	hearingAt, err := time.ParseInLocation(hearingLayout, in.Date+" "+in.Time, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: expected date DD/MM/YYYY and time HH:MM", ErrInvalidInput)
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

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = DefaultHearingMinutes
	}

	now := time.Now().UTC()
	nowDT := primitive.NewDateTimeFromTime(now)
	hearing := &models.Hearing{
		ID:              primitive.NewObjectID(),
		CaseID:          c.ID,
		Type:            in.Type,
		HearingAt:       primitive.NewDateTimeFromTime(hearingAt),
		DurationMinutes: duration,
		Location:        in.Location,
		CreatedBy:       in.Actor.Ref(),
		CreatedAt:       nowDT,
	}
	if _, err := e.Hearings.InsertOne(ctx, hearing); err != nil {
		return nil, fmt.Errorf("failed to insert hearing: %w", err)
	}

	label := fmt.Sprintf("%s — %s", in.Type, hearingAt.Format(hearingLayout))
	entry := models.TimelineEntry{
		Action: models.TimelineHearingScheduled,
		By:     in.Actor.ID,
		When:   hearing.HearingAt,
		At:     nowDT,
	}
	if _, err := e.Cases.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{
			"$set": bson.M{
				"case.nextHearingAt":    hearing.HearingAt,
				"case.nextHearingLabel": label,
				"case.updatedAt":        nowDT,
			},
			"$push": bson.M{"case.timeline": entry},
		},
	); err != nil {
		return nil, fmt.Errorf("failed to update case hearing metadata: %w", err)
	}
	c.Details.NextHearingAt = hearing.HearingAt
	c.Details.NextHearingLabel = label
	c.Details.UpdatedAt = nowDT
	c.Details.Timeline = append(c.Details.Timeline, entry)

	e.registerHearingReminders(ctx, c, hearing, now)

	notice := panel.Message{Embeds: []panel.Embed{{
		Title: fmt.Sprintf("📅 Audiência Agendada — %s", c.Details.CaseNumber),
		Color: "#9b59b6",
		Fields: []panel.Field{
			{Name: "Tipo", Value: in.Type, Inline: true},
			{Name: "Data", Value: hearingAt.Format(hearingLayout) + " (UTC)", Inline: true},
			{Name: "Duração", Value: fmt.Sprintf("%d min", duration), Inline: true},
			{Name: "Local", Value: orDefault(in.Location, "A definir"), Inline: true},
		},
		Timestamp: true,
	}}}
	e.sendToSurface(ctx, e.Config.Surfaces.Hearings, notice, "hearing notice", c.Details.CaseNumber)
	e.sendToSurface(ctx, c.Details.ThreadID, notice, "hearing notice", c.Details.CaseNumber)

	e.Audit.Record(ctx, c.ID, c.Details.CaseNumber, "schedule_hearing", in.Actor.Ref(), label)
	return hearing, nil
}

// registerHearingReminders persists the reminder rows the dispatcher will
// fire. Rows, not timers: scheduling survives restarts.
func (e *Engine) registerHearingReminders(ctx context.Context, c *models.Case, h *models.Hearing, now time.Time) {
	marks := []struct {
		kind   string
		offset time.Duration
	}{
		{models.Reminder24h, -24 * time.Hour},
		{models.Reminder1h, -time.Hour},
	}
	for _, mark := range marks {
		dueAt := h.HearingAt.Time().Add(mark.offset)
		if !dueAt.After(now) {
			zap.S().Infow("skipping past reminder mark", "caseNumber", c.Details.CaseNumber, "kind", mark.kind)
			continue
		}
		reminder := models.Reminder{
			ID:        primitive.NewObjectID(),
			HearingID: h.ID,
			CaseID:    c.ID,
			Kind:      mark.kind,
			DueAt:     primitive.NewDateTimeFromTime(dueAt),
			Fired:     false,
			CreatedAt: primitive.NewDateTimeFromTime(now),
		}
		if _, err := e.Reminders.InsertOne(ctx, reminder); err != nil {
			zap.S().Errorw("failed to register hearing reminder", "caseNumber", c.Details.CaseNumber, "kind", mark.kind, "error", err)
		}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
