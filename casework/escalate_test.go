package casework_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

func TestEscalateCase(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{
		models.RoleJudge:   {ActorID: judgeActor.ID},
		models.RoleAuthor:  {ActorID: "20"},
		models.RolePassive: {ActorID: "30"},
	})

	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-2", c.Details.CaseNumber).Return("thread-new", nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.blobs.On("UploadTranscript", mock.Anything, c.Details.CaseNumber, mock.Anything).Return("https://blob/transcript.txt", nil)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)
	f.sink.On("ArchiveSurface", mock.Anything, "thread-old").Return(nil)

	got, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: judgeActor})

	assert.NoError(t, err)
	assert.Equal(t, 2, got.Details.Instance)
	assert.Equal(t, "thread-new", got.Details.ThreadID)
	_, judgeStillSet := got.Details.Participants[models.RoleJudge]
	assert.False(t, judgeStillSet, "judge slot must reopen on escalation")
	last := got.Details.Timeline[len(got.Details.Timeline)-1]
	assert.Equal(t, models.TimelineEscalated, last.Action)
	assert.Equal(t, 1, last.From)
	assert.Equal(t, 2, last.To)
	assert.True(t, f.audit.has("escalate"))
	f.sink.AssertCalled(t, "ArchiveSurface", mock.Anything, "thread-old")
}

func TestEscalateCase_ExplicitTargetSkipsInstances(t *testing.T) {
	f := newEngineFixture()
	f.engine.Config.Instances["3"] = "area-inst-3"
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})

	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-3", c.Details.CaseNumber).Return("thread-inst-3", nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.blobs.On("UploadTranscript", mock.Anything, mock.Anything, mock.Anything).Return("https://blob/transcript.txt", nil)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)
	f.sink.On("ArchiveSurface", mock.Anything, mock.Anything).Return(nil)

	got, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{
		TargetInstance: 3,
		Actor:          judgeActor,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, got.Details.Instance)
	last := got.Details.Timeline[len(got.Details.Timeline)-1]
	assert.Equal(t, 1, last.From)
	assert.Equal(t, 3, last.To)
}

func TestEscalateCase_TargetNotAboveCurrent(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{
		TargetInstance: 1,
		Actor:          judgeActor,
	})

	assert.ErrorIs(t, err, casework.ErrInvalidInput)
	f.sink.AssertNotCalled(t, "CreateDiscussionSurface", mock.Anything, mock.Anything, mock.Anything)
	f.cases.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalateCase_CustomNoticeAndMention(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})

	var notice panel.Message
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-2", mock.Anything).Return("thread-new", nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.blobs.On("UploadTranscript", mock.Anything, mock.Anything, mock.Anything).Return("https://blob/transcript.txt", nil)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		if args.String(1) == "thread-new" {
			notice = args.Get(2).(panel.Message)
		}
	}).Return("msg-ref", nil)
	f.sink.On("ArchiveSurface", mock.Anything, mock.Anything).Return(nil)

	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{
		CustomMessage:       "Remessa determinada em sessão extraordinária.",
		IncludeActorMention: true,
		Actor:               judgeActor,
	})

	assert.NoError(t, err)
	assert.Equal(t, "<@10>", notice.Content)
	assert.Equal(t, "Remessa determinada em sessão extraordinária.", notice.Embeds[0].Description)
}

func TestEscalateCase_MissingDestinationSurface(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	c.Details.Instance = 2 // no instance 3 configured
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: judgeActor})

	assert.ErrorIs(t, err, casework.ErrConfigurationMissing)
	f.sink.AssertNotCalled(t, "CreateDiscussionSurface", mock.Anything, mock.Anything, mock.Anything)
	f.cases.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalateCase_SurfaceCreationFailureLeavesCaseUntouched(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-2", mock.Anything).Return("", assert.AnError)

	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: judgeActor})

	assert.Error(t, err)
	f.cases.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalateCase_PermissionDenied(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	defender := models.Actor{ID: "20", Credentials: []string{"cred-defender"}}
	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: defender})

	assert.ErrorIs(t, err, casework.ErrPermissionDenied)
}

func TestEscalateCase_TerminalStatus(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})
	c.Details.Status = models.StatusJulgado
	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)

	_, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: judgeActor})

	assert.ErrorIs(t, err, casework.ErrConflict)
}

func TestEscalateCase_TranscriptFailureIsNonFatal(t *testing.T) {
	f := newEngineFixture()
	c := storedCase(map[string]models.Participant{models.RoleJudge: {ActorID: judgeActor.ID}})

	f.cases.On("FindOne", mock.Anything, mock.Anything).Return(c, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-2", mock.Anything).Return("thread-new", nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.blobs.On("UploadTranscript", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)
	f.sink.On("ArchiveSurface", mock.Anything, mock.Anything).Return(nil)

	got, err := f.engine.EscalateCase(context.Background(), c.ID.Hex(), casework.EscalateInput{Actor: judgeActor})

	assert.NoError(t, err)
	assert.Equal(t, 2, got.Details.Instance)
}
