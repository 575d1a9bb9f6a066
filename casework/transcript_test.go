package casework_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/models"
)

func TestBuildTranscript(t *testing.T) {
	c := storedCase(map[string]models.Participant{
		models.RoleJudge: {ActorID: "10", DisplayTag: "Juiz#1"},
	})
	at := primitive.NewDateTimeFromTime(time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC))
	c.Details.Timeline = append(c.Details.Timeline,
		models.TimelineEntry{Action: models.TimelineEnable, By: "10", Role: models.RoleJudge, At: at},
		models.TimelineEntry{Action: models.TimelineEscalated, By: "10", From: 1, To: 2, At: at},
		models.TimelineEntry{Action: models.TimelineIntimationIssued, By: "10", Target: "30", DeadlineDays: 5, At: at},
	)

	got := casework.BuildTranscript(c)

	assert.Contains(t, got, "HISTÓRICO DO PROCESSO PROC-2026-0042")
	assert.Contains(t, got, c.Details.Title)
	assert.Contains(t, got, "Polo Ativo: Estado (ID: E-1)")
	assert.Contains(t, got, "Juiz: <@10> (Juiz#1)")
	// unfilled slots render as vacant
	assert.Contains(t, got, "(vago)")
	assert.Contains(t, got, "[02/02/2026 09:30]")
}

func TestBuildTranscript_CoversEveryTimelineAction(t *testing.T) {
	c := storedCase(nil)
	at := primitive.NewDateTimeFromTime(time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC))
	actions := []string{
		models.TimelineCreated,
		models.TimelineEnable,
		models.TimelineEscalated,
		models.TimelineDetailsUpdated,
		models.TimelineNamesUpdated,
		models.TimelineIDsUpdated,
		models.TimelineIntimationIssued,
		models.TimelineHearingScheduled,
		models.TimelineDocumentProtocols,
	}
	c.Details.Timeline = nil
	for _, action := range actions {
		c.Details.Timeline = append(c.Details.Timeline, models.TimelineEntry{Action: action, By: "10", At: at})
	}

	got := casework.BuildTranscript(c)

	// every entry renders a described line, none fall through blank
	assert.Equal(t, len(actions), strings.Count(got, "[02/02/2026 09:30]"))
}
