package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/dojsystem/process-api/api/handlers"
	"github.com/dojsystem/process-api/api/scheduler"
	"github.com/dojsystem/process-api/config"
	"github.com/dojsystem/process-api/databases"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	dbHelper := a.DatabaseHelper()
	s := scheduler.NewScheduler(
		databases.NewReminderDatabase(dbHelper),
		databases.NewCaseDatabase(dbHelper),
		databases.NewHearingDatabase(dbHelper),
		a.Hub,
		a.Config,
	)
	s.Start()
	defer s.Stop()

	zap.S().Infow("process-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
