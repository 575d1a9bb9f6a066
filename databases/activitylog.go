package databases

// go generate: mockery --name ActivityLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/models"
)

const activityLogCollName = "activity_logs"

// ActivityLogDatabase contains the methods to use with the activity log
// database. The collection is append-only: inserts and reads, no updates.
type ActivityLogDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ActivityLog, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error)
}

type activityLogDatabase struct {
	db DatabaseHelper
}

// NewActivityLogDatabase initializes a new instance of activity log database with the provided db connection
func NewActivityLogDatabase(db DatabaseHelper) ActivityLogDatabase {
	return &activityLogDatabase{
		db: db,
	}
}

func (a *activityLogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	curr, err := a.db.Collection(activityLogCollName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (a *activityLogDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return a.db.Collection(activityLogCollName).InsertOne(ctx, document, opts...)
}
