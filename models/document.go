package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document holds the structure for the documents collection in mongo
type Document struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	CaseID     primitive.ObjectID `json:"caseID" bson:"caseID"`
	Filename   string             `json:"filename" bson:"filename"`
	URL        string             `json:"url" bson:"url"`
	UploadedBy ActorRef           `json:"uploadedBy" bson:"uploadedBy"`
	UploadedAt primitive.DateTime `json:"uploadedAt" bson:"uploadedAt"`
}
