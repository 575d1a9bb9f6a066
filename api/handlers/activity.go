package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dojsystem/process-api/api"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
)

// Activity exported for testing purposes
type Activity struct {
	DB databases.ActivityLogDatabase
}

// CaseActivityHandler returns the audit trail of a case
func (a Activity) CaseActivityHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.DB.Find(ctx, bson.M{"caseID": bID})
	if err != nil {
		config.ErrorStatus("failed to get activity logs", http.StatusNotFound, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.ActivityLog{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
