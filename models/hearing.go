package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Hearing holds the structure for the hearings collection in mongo.
// Hearings are immutable once created; changes are expressed by creating a
// new hearing record.
type Hearing struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	CaseID          primitive.ObjectID `json:"caseID" bson:"caseID"`
	Type            string             `json:"type" bson:"type"`
	HearingAt       primitive.DateTime `json:"hearingAt" bson:"hearingAt"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	Location        string             `json:"location" bson:"location"`
	CreatedBy       ActorRef           `json:"createdBy" bson:"createdBy"`
	CreatedAt       primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
