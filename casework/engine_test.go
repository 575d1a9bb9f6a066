package casework_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	blobmocks "github.com/dojsystem/process-api/blob/mocks"
	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/config"
	dbmocks "github.com/dojsystem/process-api/databases/mocks"
	"github.com/dojsystem/process-api/models"
	sinkmocks "github.com/dojsystem/process-api/notify/mocks"
	"github.com/dojsystem/process-api/panel"
)

// auditRecorder records audit actions for assertions.
type auditRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditRecorder) Record(_ context.Context, _ primitive.ObjectID, _ string, action string, _ models.ActorRef, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *auditRecorder) has(action string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, got := range a.actions {
		if got == action {
			return true
		}
	}
	return false
}

// mailRecorder records intimation copies sent to the registry mailbox.
type mailRecorder struct {
	mu    sync.Mutex
	calls int
}

func (m *mailRecorder) SendIntimationCopy(string, string, string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mailRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testConfig() config.Config {
	return config.Config{
		Roles: map[string]string{
			"judge":    "cred-judge",
			"defender": "cred-defender",
			"admin":    "cred-admin",
		},
		Instances: map[string]string{
			"1": "area-inst-1",
			"2": "area-inst-2",
		},
		Surfaces: config.Surfaces{
			Audit:       "surface-audit",
			Movements:   "surface-movements",
			Hearings:    "surface-hearings",
			Intimations: "surface-intimations",
		},
	}
}

type engineFixture struct {
	engine    *casework.Engine
	cases     *dbmocks.CaseDatabase
	hearings  *dbmocks.HearingDatabase
	documents *dbmocks.DocumentDatabase
	reminders *dbmocks.ReminderDatabase
	sink      *sinkmocks.Sink
	audit     *auditRecorder
	mailer    *mailRecorder
	blobs     *blobmocks.Store
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		cases:     &dbmocks.CaseDatabase{},
		hearings:  &dbmocks.HearingDatabase{},
		documents: &dbmocks.DocumentDatabase{},
		reminders: &dbmocks.ReminderDatabase{},
		sink:      &sinkmocks.Sink{},
		audit:     &auditRecorder{},
		mailer:    &mailRecorder{},
		blobs:     &blobmocks.Store{},
	}
	f.engine = &casework.Engine{
		Cases:     f.cases,
		Hearings:  f.hearings,
		Documents: f.documents,
		Reminders: f.reminders,
		Sink:      f.sink,
		Blobs:     f.blobs,
		Audit:     f.audit,
		Mailer:    f.mailer,
		Config:    testConfig(),
	}
	return f
}

var (
	judgeActor = models.Actor{ID: "10", Tag: "Juiz#1", Credentials: []string{"cred-judge"}}
	adminActor = models.Actor{ID: "99", Tag: "Admin#1", Credentials: []string{"cred-admin"}}
)

func storedCase(participants map[string]models.Participant) *models.Case {
	now := primitive.NewDateTimeFromTime(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
	parties := models.Parties{
		Active:  models.Party{Name: "Estado", StateID: "E-1"},
		Passive: models.Party{Name: "João Silva", StateID: "P-9"},
	}
	return &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber:     "PROC-2026-0042",
			Title:          "Processo (PROC-2026-0042) Estado X João Silva",
			Status:         models.StatusAtivo,
			Instance:       1,
			Parties:        parties,
			PartiesDisplay: panel.BuildPartiesDisplay(parties),
			Participants:   participants,
			Timeline: []models.TimelineEntry{
				{Action: models.TimelineCreated, By: "999", At: now},
			},
			ThreadID:  "thread-old",
			CreatedBy: models.ActorRef{ID: "999", Tag: "Escrivão#1"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func TestCreateCase(t *testing.T) {
	f := newEngineFixture()
	year := time.Now().UTC().Year()

	f.cases.On("NextCaseSequence", mock.Anything, year).Return(7, nil)
	f.cases.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	f.cases.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, "area-inst-1", mock.Anything).Return("thread-new", nil)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)

	created, err := f.engine.CreateCase(context.Background(), casework.CreateCaseInput{
		ActiveName:     "Estado",
		ActiveStateID:  "E-1",
		PassiveName:    "Maria Souza",
		PassiveStateID: "P-2",
		Type:           "Criminal",
		Actor:          adminActor,
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Details.CaseNumber, "PROC-"), created.Details.CaseNumber)
	assert.Equal(t, "PROC-"+itoa(year)+"-0007", created.Details.CaseNumber)
	assert.Equal(t, "Processo ("+created.Details.CaseNumber+") Estado X Maria Souza", created.Details.Title)
	assert.Equal(t, models.StatusAtivo, created.Details.Status)
	assert.Equal(t, 1, created.Details.Instance)
	assert.Empty(t, created.Details.Participants)
	assert.Equal(t, "thread-new", created.Details.ThreadID)
	if assert.Len(t, created.Details.Timeline, 1) {
		assert.Equal(t, models.TimelineCreated, created.Details.Timeline[0].Action)
	}
	assert.True(t, f.audit.has("create_case"))
	f.sink.AssertCalled(t, "CreateDiscussionSurface", mock.Anything, "area-inst-1", created.Details.CaseNumber)
}

func TestCreateCase_MissingParties(t *testing.T) {
	f := newEngineFixture()

	_, err := f.engine.CreateCase(context.Background(), casework.CreateCaseInput{
		ActiveName: "Estado",
		Actor:      adminActor,
	})

	assert.ErrorIs(t, err, casework.ErrInvalidInput)
	f.cases.AssertNotCalled(t, "NextCaseSequence", mock.Anything, mock.Anything)
}

func TestCreateCase_SurfaceFailureDoesNotFail(t *testing.T) {
	f := newEngineFixture()
	year := time.Now().UTC().Year()

	f.cases.On("NextCaseSequence", mock.Anything, year).Return(8, nil)
	f.cases.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	f.sink.On("CreateDiscussionSurface", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)
	f.sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("msg-ref", nil)

	created, err := f.engine.CreateCase(context.Background(), casework.CreateCaseInput{
		ActiveName:  "Estado",
		PassiveName: "Réu",
		Actor:       adminActor,
	})

	assert.NoError(t, err)
	assert.Empty(t, created.Details.ThreadID)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
