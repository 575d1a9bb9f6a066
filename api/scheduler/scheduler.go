// Package scheduler runs the periodic reminder dispatch for scheduled
// hearings. Reminders live as database rows, so a restart loses nothing:
// the next pass picks up whatever is due.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/notify"
	"github.com/dojsystem/process-api/panel"
)

// Scheduler handles the periodic hearing-reminder job
type Scheduler struct {
	cron      *cron.Cron
	Reminders databases.ReminderDatabase
	Cases     databases.CaseDatabase
	Hearings  databases.HearingDatabase
	Sink      notify.Sink
	Config    config.Config
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	reminders databases.ReminderDatabase,
	cases databases.CaseDatabase,
	hearings databases.HearingDatabase,
	sink notify.Sink,
	conf config.Config,
) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		Reminders: reminders,
		Cases:     cases,
		Hearings:  hearings,
		Sink:      sink,
		Config:    conf,
	}
}

// Start begins the scheduler with the reminder dispatch job
func (s *Scheduler) Start() {
	// Dispatch due hearing reminders every minute
	_, err := s.cron.AddFunc("* * * * *", s.dispatchDueReminders)
	if err != nil {
		zap.S().Errorw("failed to register reminder dispatch job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("hearing reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("hearing reminder scheduler stopped")
}

func (s *Scheduler) dispatchDueReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	due, err := s.Reminders.FindDue(ctx, time.Now().UTC())
	if err != nil {
		zap.S().Errorw("failed to find due reminders", "error", err)
		return
	}
	for _, reminder := range due {
		s.fireReminder(ctx, reminder)
	}
}

// fireReminder delivers one reminder and marks it fired. The mark happens
// even when delivery fails: a reminder is fired at most once, never
// retried into a flood.
func (s *Scheduler) fireReminder(ctx context.Context, reminder models.Reminder) {
	c, err := s.Cases.FindOne(ctx, bson.M{"_id": reminder.CaseID})
	if err != nil {
		zap.S().Errorw("reminder references missing case, marking fired", "reminderID", reminder.ID.Hex(), "error", err)
		s.markFired(ctx, reminder)
		return
	}
	hearing, err := s.Hearings.FindOne(ctx, bson.M{"_id": reminder.HearingID})
	if err != nil {
		zap.S().Errorw("reminder references missing hearing, marking fired", "reminderID", reminder.ID.Hex(), "error", err)
		s.markFired(ctx, reminder)
		return
	}

	lead := "em 24 horas"
	if reminder.Kind == models.Reminder1h {
		lead = "em 1 hora"
	}
	msg := panel.Message{Embeds: []panel.Embed{{
		Title: fmt.Sprintf("⏰ Lembrete de Audiência — %s", c.Details.CaseNumber),
		Description: fmt.Sprintf("A audiência **%s** começa %s: %s (UTC).",
			hearing.Type, lead, hearing.HearingAt.Time().UTC().Format("02/01/2006 15:04")),
		Color: "#f39c12",
		Fields: []panel.Field{
			{Name: "Local", Value: location(hearing), Inline: true},
			{Name: "Duração", Value: fmt.Sprintf("%d min", hearing.DurationMinutes), Inline: true},
		},
		Timestamp: true,
	}}}

	if s.Config.Surfaces.Hearings != "" {
		if _, err := s.Sink.Send(ctx, s.Config.Surfaces.Hearings, msg); err != nil {
			zap.S().Errorw("failed to send hearing reminder", "caseNumber", c.Details.CaseNumber, "error", err)
		}
	}
	if c.Details.ThreadID != "" {
		if _, err := s.Sink.Send(ctx, c.Details.ThreadID, msg); err != nil {
			zap.S().Errorw("failed to send hearing reminder to case surface", "caseNumber", c.Details.CaseNumber, "error", err)
		}
	}

	s.markFired(ctx, reminder)
	zap.S().Infow("hearing reminder fired", "caseNumber", c.Details.CaseNumber, "kind", reminder.Kind)
}

func (s *Scheduler) markFired(ctx context.Context, reminder models.Reminder) {
	if err := s.Reminders.MarkFired(ctx, reminder.ID); err != nil {
		zap.S().Errorw("failed to mark reminder fired", "reminderID", reminder.ID.Hex(), "error", err)
	}
}

func location(h *models.Hearing) string {
	if h.Location == "" {
		return "A definir"
	}
	return h.Location
}
