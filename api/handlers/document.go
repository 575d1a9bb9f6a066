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

// maxDocumentBytes bounds uploaded document size (16 MiB).
const maxDocumentBytes = 16 << 20

// Document exported for testing purposes
type Document struct {
	DB     databases.DocumentDatabase
	Engine *casework.Engine
}

// FileDocumentHandler protocols a document on a case. The request is
// multipart/form-data: "file" holds the content, "actor" a JSON actor.
func (d Document) FileDocumentHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	var actor models.Actor
	if err := json.Unmarshal([]byte(r.FormValue("actor")), &actor); err != nil {
		config.ErrorStatus("failed to decode actor", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("missing file", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	doc, err := d.Engine.FileDocument(ctx, caseID, actor, header.Filename, file)
	if err != nil {
		engineErrorStatus("failed to file document", w, err)
		return
	}

	b, err := json.Marshal(doc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseDocumentsHandler returns all documents filed on a case
func (d Document) CaseDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	bID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := d.DB.Find(ctx, bson.M{"caseID": bID})
	if err != nil {
		config.ErrorStatus("failed to get documents", http.StatusNotFound, w, err)
		return
	}
	if dbResp == nil {
		dbResp = []models.Document{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
