package databases

// go generate: mockery --name ReminderDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/models"
)

const reminderCollName = "reminders"

// ReminderDatabase contains the methods to use with the reminder database
type ReminderDatabase interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error)
	FindDue(ctx context.Context, now time.Time) ([]models.Reminder, error)
	MarkFired(ctx context.Context, id primitive.ObjectID) error
}

type reminderDatabase struct {
	db DatabaseHelper
}

// NewReminderDatabase initializes a new instance of reminder database with the provided db connection
func NewReminderDatabase(db DatabaseHelper) ReminderDatabase {
	return &reminderDatabase{
		db: db,
	}
}

func (r *reminderDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return r.db.Collection(reminderCollName).InsertOne(ctx, document, opts...)
}

// FindDue returns unfired reminders whose due time has passed.
func (r *reminderDatabase) FindDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	filter := bson.M{
		"fired": false,
		"dueAt": bson.M{"$lte": primitive.NewDateTimeFromTime(now)},
	}
	curr, err := r.db.Collection(reminderCollName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &reminders)
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderDatabase) MarkFired(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.db.Collection(reminderCollName).UpdateOne(ctx,
		bson.M{"_id": id, "fired": false},
		bson.M{"$set": bson.M{
			"fired":   true,
			"firedAt": primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	return err
}
