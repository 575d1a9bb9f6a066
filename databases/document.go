package databases

// go generate: mockery --name DocumentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dojsystem/process-api/models"
)

const documentCollName = "documents"

// DocumentDatabase contains the methods to use with the document database
type DocumentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error)
}

type documentDatabase struct {
	db DatabaseHelper
}

// NewDocumentDatabase initializes a new instance of document database with the provided db connection
func NewDocumentDatabase(db DatabaseHelper) DocumentDatabase {
	return &documentDatabase{
		db: db,
	}
}

func (d *documentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error) {
	var documents []models.Document
	curr, err := d.db.Collection(documentCollName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &documents)
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (d *documentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return d.db.Collection(documentCollName).InsertOne(ctx, document, opts...)
}
