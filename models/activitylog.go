package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ActivityLog holds the structure for the activity_logs collection in
// mongo. Rows are append-only; nothing in the system updates or deletes
// them.
type ActivityLog struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	CaseID    primitive.ObjectID `json:"caseID" bson:"caseID"`
	Action    string             `json:"action" bson:"action"`
	AuthorID  string             `json:"authorID" bson:"authorID"`
	AuthorTag string             `json:"authorTag" bson:"authorTag"`
	Details   string             `json:"details" bson:"details"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
