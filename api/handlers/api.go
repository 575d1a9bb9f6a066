// Package handlers wires the HTTP routes to the case engine and the
// database layer.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/api"
	"github.com/dojsystem/process-api/audit"
	"github.com/dojsystem/process-api/blob"
	"github.com/dojsystem/process-api/casework"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/notify"
)

// App stores the router, db connection and engine, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Engine   *casework.Engine
	Hub      *notify.Hub
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.Auth{Config: a.Config}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	c := Case{DB: databases.NewCaseDatabase(a.dbHelper), Engine: a.Engine}
	h := Hearing{DB: databases.NewHearingDatabase(a.dbHelper), Engine: a.Engine}
	d := Document{DB: databases.NewDocumentDatabase(a.dbHelper), Engine: a.Engine}
	act := Activity{DB: databases.NewActivityLogDatabase(a.dbHelper)}
	sig := SignatureHandler{Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases/id/{case_id}", api.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases/number/{case_number}", api.Middleware(http.HandlerFunc(c.CaseByNumberHandler))).Methods("GET")

	apiCreate.Handle("/cases/{case_id}/enroll", api.Middleware(http.HandlerFunc(c.EnrollHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/escalate", api.Middleware(http.HandlerFunc(c.EscalateHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/details", api.Middleware(http.HandlerFunc(c.UpdateDetailsHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/parties", api.Middleware(http.HandlerFunc(c.UpdatePartiesHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/intimations", api.Middleware(http.HandlerFunc(c.IssueIntimationHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/hearings", api.Middleware(http.HandlerFunc(h.ScheduleHearingHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/hearings", api.Middleware(http.HandlerFunc(h.CaseHearingsHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/documents", api.Middleware(http.HandlerFunc(d.FileDocumentHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/documents", api.Middleware(http.HandlerFunc(d.CaseDocumentsHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/activity", api.Middleware(http.HandlerFunc(act.CaseActivityHandler))).Methods("GET")

	apiCreate.Handle("/judges/{actor_id}/cases", api.Middleware(http.HandlerFunc(c.JudgeCasesHandler))).Methods("GET")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(sig.GenerateSignature))).Methods("POST")

	if a.Hub != nil {
		r.HandleFunc("/ws", a.Hub.ServeWS)
	}

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(context.Background())
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("process-api has connected to the database")

	if a.Hub == nil {
		a.Hub = notify.NewHub()
	}

	var blobs blob.Store
	if a.Config.Blob.CloudName != "" {
		store, err := blob.NewCloudinaryStore(a.Config)
		if err != nil {
			zap.S().With(err).Error("failed to initialize blob store")
			return err
		}
		blobs = store
	} else {
		zap.S().Warn("blob storage not configured, transcripts and documents disabled")
	}

	trail := audit.Trail{
		DB:     databases.NewActivityLogDatabase(a.dbHelper),
		Sink:   a.Hub,
		Config: a.Config,
	}
	a.Engine = &casework.Engine{
		Cases:     databases.NewCaseDatabase(a.dbHelper),
		Hearings:  databases.NewHearingDatabase(a.dbHelper),
		Documents: databases.NewDocumentDatabase(a.dbHelper),
		Reminders: databases.NewReminderDatabase(a.dbHelper),
		Sink:      a.Hub,
		Blobs:     blobs,
		Audit:     trail,
		Mailer:    notify.Mailer{Config: a.Config},
		Config:    a.Config,
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// DatabaseHelper exposes the connected database helper so main can hand it
// to the scheduler.
func (a *App) DatabaseHelper() databases.DatabaseHelper {
	return a.dbHelper
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
