package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dojsystem/process-api/api"
	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
)

// Hearing exported for testing purposes
type Hearing struct {
	DB     databases.HearingDatabase
	Engine *casework.Engine
}

type scheduleHearingRequest struct {
	Type            string       `json:"type"`
	Date            string       `json:"date"` // DD/MM/YYYY
	Time            string       `json:"time"` // HH:MM
	Location        string       `json:"location"`
	DurationMinutes int          `json:"durationMinutes"`
	Actor           models.Actor `json:"actor"`
}

// ScheduleHearingHandler schedules a hearing on a case
func (h Hearing) ScheduleHearingHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	var req scheduleHearingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.Engine.ScheduleHearing(ctx, caseID, casework.HearingInput{
		Type:            req.Type,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		DurationMinutes: req.DurationMinutes,
		Actor:           req.Actor,
	})
	if err != nil {
		engineErrorStatus("failed to schedule hearing", w, err)
		return
	}

	b, err := json.Marshal(hearing)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseHearingsHandler returns all hearings of a case
func (h Hearing) CaseHearingsHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := h.DB.Find(ctx, bson.M{"caseID": bID})
	if err != nil {
		config.ErrorStatus("failed to get hearings", http.StatusNotFound, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Hearing{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
