package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/api/handlers"
	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	dbmocks "github.com/dojsystem/process-api/databases/mocks"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// MockDatabaseHelper is a mock type for the DatabaseHelper type
type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.ClientHelper)
	}
	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CollectionHelper)
	}
	return r0
}

func gatewayConfig() config.Config {
	return config.Config{
		Roles: map[string]string{
			"judge":    "cred-judge",
			"defender": "cred-defender",
			"admin":    "cred-admin",
		},
	}
}

func TestCase_CaseByIDHandlerInvalidID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases/id/1234", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": "1234"})
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid case ID")
}

func TestCase_CaseByNumberHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases/number/PROC-2026-9999", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_number": "PROC-2026-9999"})
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	conn := &dbmocks.CollectionHelper{}
	singleResult := &dbmocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "cases").Return(conn)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CaseByNumberHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get case by number")
}

func TestCase_CasesHandlerEmptyArray(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	conn := &dbmocks.CollectionHelper{}
	cursor := &dbmocks.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	db.On("Collection", "cases").Return(conn)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestCase_CasesHandlerAppliesLimitAndOffset(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases?limit=5&offset=20", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	conn := &dbmocks.CollectionHelper{}
	cursor := &dbmocks.CursorHelper{}

	var opts *options.FindOptions
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		opts = args.Get(2).(*options.FindOptions)
	}).Return(cursor, nil)
	db.On("Collection", "cases").Return(conn)

	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	if assert.NotNil(t, opts) {
		assert.Equal(t, int64(5), *opts.Limit)
		assert.Equal(t, int64(20), *opts.Skip)
	}
}

func TestCase_CasesHandlerInvalidLimit(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases?limit=zero", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid limit")
}

func TestCase_CasesHandlerInvalidInstanceFilter(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/cases?instance=abc", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("x-api-key", "test-key")

	db := &MockDatabaseHelper{}
	c := handlers.Case{DB: databases.NewCaseDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid instance filter")
}

func TestCase_CreateCaseHandlerBadBody(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/cases", bytes.NewBufferString("not-json"))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("x-api-key", "test-key")

	c := handlers.Case{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to decode request body")
}

func enrollTestEngine(stored *models.Case) (*casework.Engine, *dbmocks.CaseDatabase) {
	cases := &dbmocks.CaseDatabase{}
	cases.On("FindOne", mock.Anything, mock.Anything).Return(stored, nil)
	return &casework.Engine{Cases: cases, Config: gatewayConfig()}, cases
}

func judgeHeldCase() *models.Case {
	return &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber: "PROC-2026-0042",
			Status:     models.StatusAtivo,
			Instance:   1,
			Participants: map[string]models.Participant{
				models.RoleJudge: {ActorID: "10", DisplayTag: "Juiz#1"},
			},
		},
	}
}

func TestCase_EnrollHandlerAlreadyEnrolled(t *testing.T) {
	stored := judgeHeldCase()
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"role": "judge", "actor": {"id": "10", "tag": "Juiz#1", "credentials": ["cred-judge"]}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/enroll", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.EnrollHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"response": "actor already enrolled in this role"}`, rr.Body.String())
}

func TestCase_EnrollHandlerRoleTaken(t *testing.T) {
	stored := judgeHeldCase()
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"role": "judge", "actor": {"id": "11", "tag": "Juiz#2", "credentials": ["cred-judge"]}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/enroll", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.EnrollHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to enroll participant")
}

func TestCase_EnrollHandlerMissingCredential(t *testing.T) {
	stored := judgeHeldCase()
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"role": "author", "actor": {"id": "50", "tag": "Civil#1"}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/enroll", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.EnrollHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCase_EscalateHandlerMissingSurface(t *testing.T) {
	stored := judgeHeldCase()
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"actor": {"id": "10", "credentials": ["cred-judge"]}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/escalate", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.EscalateHandler).ServeHTTP(rr, req)

	// no discussion area configured for the next instance
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestCase_JudgeCasesHandlerEmptyArray(t *testing.T) {
	cases := &dbmocks.CaseDatabase{}
	cases.On("Find", mock.Anything, mock.Anything).Return(nil, nil)
	c := handlers.Case{Engine: &casework.Engine{Cases: cases, Config: gatewayConfig()}}

	req, err := http.NewRequest("GET", "/api/v1/judges/10/cases", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"actor_id": "10"})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.JudgeCasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestCase_EscalateHandlerTargetBelowCurrent(t *testing.T) {
	stored := judgeHeldCase()
	stored.Details.Instance = 2
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"targetInstance": 1, "actor": {"id": "10", "credentials": ["cred-judge"]}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/escalate", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.EscalateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCase_JudgeCasesHandlerOverviewPage(t *testing.T) {
	var stored []models.Case
	for i := 0; i < 4; i++ {
		stored = append(stored, models.Case{
			ID: primitive.NewObjectID(),
			Details: models.CaseDetails{
				CaseNumber: "PROC-2026-004" + strconv.Itoa(i),
				Status:     models.StatusAtivo,
				Instance:   1,
			},
		})
	}
	cases := &dbmocks.CaseDatabase{}
	cases.On("Find", mock.Anything, mock.Anything).Return(stored, nil)
	c := handlers.Case{Engine: &casework.Engine{Cases: cases, Config: gatewayConfig()}}

	req, err := http.NewRequest("GET", "/api/v1/judges/10/cases?page=0&tag=Juiz%231", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"actor_id": "10"})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.JudgeCasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var msg panel.Message
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	assert.Contains(t, msg.Content, "Juiz#1")
	assert.Contains(t, msg.Content, "página 1/2")
	assert.Len(t, msg.Embeds, 3)
	assert.NotEmpty(t, msg.Actions)
}

func TestCase_IssueIntimationHandlerTerminalCase(t *testing.T) {
	stored := judgeHeldCase()
	stored.Details.Status = models.StatusArquivado
	engine, _ := enrollTestEngine(stored)
	c := handlers.Case{Engine: engine}

	body := bytes.NewBufferString(`{"targetId": "30", "reason": "Apresentar defesa", "deadlineDays": 5, "actor": {"id": "10", "credentials": ["cred-judge"]}}`)
	req, err := http.NewRequest("POST", "/api/v1/cases/"+stored.ID.Hex()+"/intimations", body)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"case_id": stored.ID.Hex()})
	req.Header.Set("x-api-key", "test-key")

	rr := httptest.NewRecorder()
	http.HandlerFunc(c.IssueIntimationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}
