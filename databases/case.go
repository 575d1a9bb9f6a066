package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/models"
)

const (
	caseCollName    = "cases"
	counterCollName = "counters"
)

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Case, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Case, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	NextCaseSequence(ctx context.Context, year int) (int, error)
	ClaimRole(ctx context.Context, caseID primitive.ObjectID, roleKey string, p models.Participant, entry models.TimelineEntry) (bool, error)
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func (c *caseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Case, error) {
	dbCase := &models.Case{}
	err := c.db.Collection(caseCollName).FindOne(ctx, filter, opts...).Decode(&dbCase)
	if err != nil {
		return nil, err
	}
	return dbCase, nil
}

func (c *caseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Case, error) {
	var cases []models.Case
	curr, err := c.db.Collection(caseCollName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &cases)
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *caseDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(caseCollName).CountDocuments(ctx, filter, opts...)
}

func (c *caseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return c.db.Collection(caseCollName).InsertOne(ctx, document, opts...)
}

func (c *caseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(caseCollName).UpdateOne(ctx, filter, update, opts...)
}

// NextCaseSequence allocates the next case number sequence for a year. The
// allocation is a single findOneAndUpdate $inc upsert on a per-year counter
// document, so concurrent creations can never be handed the same value.
func (c *caseDatabase) NextCaseSequence(ctx context.Context, year int) (int, error) {
	counterID := fmt.Sprintf("case_number_%d", year)
	res := c.db.Collection(counterCollName).FindOneAndUpdate(ctx,
		bson.M{"_id": counterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var counter struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// ClaimRole writes the participant into the given role slot only if the
// slot is currently empty, appending the timeline entry in the same write.
// Returns false when another actor already holds the role (or the case is
// gone); the caller distinguishes the two by re-reading the case.
func (c *caseDatabase) ClaimRole(ctx context.Context, caseID primitive.ObjectID, roleKey string, p models.Participant, entry models.TimelineEntry) (bool, error) {
	field := "case.participants." + roleKey
	res, err := c.db.Collection(caseCollName).UpdateOne(ctx,
		bson.M{"_id": caseID, field: bson.M{"$exists": false}},
		bson.M{
			"$set": bson.M{
				field:            p,
				"case.updatedAt": primitive.NewDateTimeFromTime(time.Now().UTC()),
			},
			"$push": bson.M{"case.timeline": entry},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
