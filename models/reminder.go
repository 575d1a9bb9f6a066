package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reminder kinds relative to the hearing time.
const (
	Reminder24h = "24h"
	Reminder1h  = "1h"
)

// Reminder is a persisted pending-reminder row for a hearing. The
// dispatcher fires due rows and marks them; rows survive process restarts
// so no in-memory timer state exists.
type Reminder struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	HearingID primitive.ObjectID `json:"hearingID" bson:"hearingID"`
	CaseID    primitive.ObjectID `json:"caseID" bson:"caseID"`
	Kind      string             `json:"kind" bson:"kind"`
	DueAt     primitive.DateTime `json:"dueAt" bson:"dueAt"`
	Fired     bool               `json:"fired" bson:"fired"`
	FiredAt   primitive.DateTime `json:"firedAt,omitempty" bson:"firedAt,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
