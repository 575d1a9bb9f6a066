package casework_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/models"
)

func TestIssueIntimation(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)

	got, err := f.engine.IssueIntimation(context.Background(), c.ID.Hex(), casework.IntimationInput{
		TargetID:     "30",
		TargetTag:    "Adv#3",
		Reason:       "Apresentar contestação",
		DeadlineDays: 5,
		Actor:        judgeActor,
	})

	assert.NoError(t, err)
	last := got.Details.Timeline[len(got.Details.Timeline)-1]
	assert.Equal(t, models.TimelineIntimationIssued, last.Action)
	assert.Equal(t, "30", last.Target)
	assert.Equal(t, 5, last.DeadlineDays)
	assert.True(t, f.audit.has("emit_intimation"))
	assert.Equal(t, 1, f.mailer.count())
	// intimations surface and case surface
	f.sink.AssertNumberOfCalls(t, "Send", 2)
}

func TestIssueIntimation_Validation(t *testing.T) {
	f := newEngineFixture()
	caseID := storedCase(nil).ID.Hex()

	_, err := f.engine.IssueIntimation(context.Background(), caseID, casework.IntimationInput{
		TargetTag: "Adv#3", Reason: "x", DeadlineDays: 5, Actor: judgeActor,
	})
	assert.ErrorIs(t, err, casework.ErrInvalidInput)

	_, err = f.engine.IssueIntimation(context.Background(), caseID, casework.IntimationInput{
		TargetID: "30", DeadlineDays: 5, Actor: judgeActor,
	})
	assert.ErrorIs(t, err, casework.ErrInvalidInput)

	_, err = f.engine.IssueIntimation(context.Background(), caseID, casework.IntimationInput{
		TargetID: "30", Reason: "x", DeadlineDays: 0, Actor: judgeActor,
	})
	assert.ErrorIs(t, err, casework.ErrInvalidInput)
}

func TestIssueIntimation_SurfaceNotConfigured(t *testing.T) {
	f := newEngineFixture()
	f.engine.Config.Surfaces.Intimations = ""
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	_, err := f.engine.IssueIntimation(context.Background(), c.ID.Hex(), casework.IntimationInput{
		TargetID: "30", Reason: "x", DeadlineDays: 5, Actor: judgeActor,
	})

	assert.ErrorIs(t, err, casework.ErrConfigurationMissing)
	f.cases.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueIntimation_TerminalStatus(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	c.Details.Status = models.StatusArquivado
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	_, err := f.engine.IssueIntimation(context.Background(), c.ID.Hex(), casework.IntimationInput{
		TargetID: "30", Reason: "x", DeadlineDays: 5, Actor: judgeActor,
	})

	assert.ErrorIs(t, err, casework.ErrConflict)
}
