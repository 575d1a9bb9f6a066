package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/api"
	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// Case exported for testing purposes
type Case struct {
	DB     databases.CaseDatabase
	Engine *casework.Engine
}

// engineErrorStatus maps engine sentinel errors onto HTTP status codes.
func engineErrorStatus(message string, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, casework.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, casework.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, casework.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, casework.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, casework.ErrConfigurationMissing):
		code = http.StatusServiceUnavailable
	}
	config.ErrorStatus(message, code, w, err)
}

// Page size bounds for the case list.
const (
	defaultCaseListLimit = 10
	maxCaseListLimit     = 100
)

// CasesHandler returns a page of cases, optionally filtered by status or
// instance. Pagination comes from the limit and offset query parameters.
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["case.status"] = status
	}
	if instance := r.URL.Query().Get("instance"); instance != "" {
		n, err := strconv.Atoi(instance)
		if err != nil {
			config.ErrorStatus("invalid instance filter", http.StatusBadRequest, w, err)
			return
		}
		filter["case.instance"] = n
	}

	limit64 := int64(defaultCaseListLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			config.ErrorStatus("invalid limit", http.StatusBadRequest, w, err)
			return
		}
		if n > maxCaseListLimit {
			n = maxCaseListLimit
		}
		limit64 = int64(n)
	}
	skip64 := int64(0)
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			config.ErrorStatus("invalid offset", http.StatusBadRequest, w, err)
			return
		}
		skip64 = int64(n)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.Find(ctx, filter, &options.FindOptions{Limit: &limit64, Skip: &skip64})
	if err != nil {
		config.ErrorStatus("failed to get cases", http.StatusNotFound, w, err)
		return
	}
	// Because the frontend requires that we return an empty array
	// instead of null
	if dbResp == nil {
		dbResp = []models.Case{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseByIDHandler returns a case by ID
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseByNumberHandler returns a case by its case number
func (c Case) CaseByNumberHandler(w http.ResponseWriter, r *http.Request) {
	caseNumber := mux.Vars(r)["case_number"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"case.caseNumber": caseNumber})
	if err != nil {
		config.ErrorStatus("failed to get case by number", http.StatusNotFound, w, err)
		return
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type createCaseRequest struct {
	ActiveName     string       `json:"activeName"`
	ActiveStateID  string       `json:"activeStateId"`
	PassiveName    string       `json:"passiveName"`
	PassiveStateID string       `json:"passiveStateId"`
	Description    string       `json:"description"`
	Type           string       `json:"type"`
	Actor          models.Actor `json:"actor"`
}

// CreateCaseHandler opens a new case
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := c.Engine.CreateCase(ctx, casework.CreateCaseInput{
		ActiveName:     req.ActiveName,
		ActiveStateID:  req.ActiveStateID,
		PassiveName:    req.PassiveName,
		PassiveStateID: req.PassiveStateID,
		Description:    req.Description,
		Type:           req.Type,
		Actor:          req.Actor,
	})
	if err != nil {
		engineErrorStatus("failed to create case", w, err)
		return
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

type enrollRequest struct {
	Role  string       `json:"role"`
	Actor models.Actor `json:"actor"`
}

// EnrollHandler claims a role slot on a case
func (c Case) EnrollHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Engine.EnrollParticipant(ctx, caseID, req.Role, req.Actor)
	if errors.Is(err, casework.ErrAlreadyEnrolled) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"response": "actor already enrolled in this role"}`))
		return
	}
	if err != nil {
		engineErrorStatus("failed to enroll participant", w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type escalateRequest struct {
	TargetInstance      int          `json:"targetInstance"`
	CustomMessage       string       `json:"customMessage"`
	IncludeActorMention bool         `json:"includeActorMention"`
	Actor               models.Actor `json:"actor"`
}

// EscalateHandler promotes a case to a higher instance
func (c Case) EscalateHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req escalateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Engine.EscalateCase(ctx, caseID, casework.EscalateInput{
		TargetInstance:      req.TargetInstance,
		CustomMessage:       req.CustomMessage,
		IncludeActorMention: req.IncludeActorMention,
		Actor:               req.Actor,
	})
	if err != nil {
		engineErrorStatus("failed to escalate case", w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type updateDetailsRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Type        *string      `json:"type"`
	Status      *string      `json:"status"`
	Actor       models.Actor `json:"actor"`
}

// UpdateDetailsHandler edits the descriptive fields of a case
func (c Case) UpdateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Engine.UpdateCaseDetails(ctx, caseID, req.Actor, casework.DetailsUpdate{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
	})
	if err != nil {
		engineErrorStatus("failed to update case details", w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type updatePartiesRequest struct {
	ActiveName     *string      `json:"activeName"`
	PassiveName    *string      `json:"passiveName"`
	ActiveStateID  *string      `json:"activeStateId"`
	PassiveStateID *string      `json:"passiveStateId"`
	Actor          models.Actor `json:"actor"`
}

// UpdatePartiesHandler edits the party records of a case
func (c Case) UpdatePartiesHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req updatePartiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Engine.UpdatePartyInfo(ctx, caseID, req.Actor, casework.PartyUpdate{
		ActiveName:     req.ActiveName,
		PassiveName:    req.PassiveName,
		ActiveStateID:  req.ActiveStateID,
		PassiveStateID: req.PassiveStateID,
	})
	if err != nil {
		engineErrorStatus("failed to update party info", w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type intimationRequest struct {
	TargetID     string       `json:"targetId"`
	TargetTag    string       `json:"targetTag"`
	Reason       string       `json:"reason"`
	DeadlineDays int          `json:"deadlineDays"`
	Actor        models.Actor `json:"actor"`
}

// IssueIntimationHandler publishes a formal notice with a deadline
func (c Case) IssueIntimationHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req intimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.Engine.IssueIntimation(ctx, caseID, casework.IntimationInput{
		TargetID:     req.TargetID,
		TargetTag:    req.TargetTag,
		Reason:       req.Reason,
		DeadlineDays: req.DeadlineDays,
		Actor:        req.Actor,
	})
	if err != nil {
		engineErrorStatus("failed to issue intimation", w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// JudgeCasesHandler returns the active caseload for a judge. Without a page
// parameter the response is the raw case list; with one it is the rendered
// overview panel for that page.
func (c Case) JudgeCasesHandler(w http.ResponseWriter, r *http.Request) {
	actorID := mux.Vars(r)["actor_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Engine.ListCasesForJudge(ctx, actorID)
	if err != nil {
		config.ErrorStatus("failed to list judge cases", http.StatusInternalServerError, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Case{}
	}

	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			config.ErrorStatus("invalid page", http.StatusBadRequest, w, err)
			return
		}
		judgeTag := r.URL.Query().Get("tag")
		if judgeTag == "" {
			judgeTag = fmt.Sprintf("<@%s>", actorID)
		}
		b, err := json.Marshal(panel.BuildJudgeOverview(dbResp, judgeTag, page))
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
