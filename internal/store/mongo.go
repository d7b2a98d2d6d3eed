package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// MongoStore reads documents from a MongoDB database, one collection per
// document collection. Documents are matched on _id, first as a string and
// then, when the ID is a valid hex ObjectID, as an ObjectID.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validate(collection, id); err != nil {
		return nil, err
	}
	col := s.db.Collection(collection, options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))

	fields, err := findByID(ctx, col, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if oid, hexErr := primitive.ObjectIDFromHex(id); hexErr == nil {
			fields, err = findByID(ctx, col, oid)
		}
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(collection, id)
		}
		return nil, upstream(collection, id, err)
	}
	delete(fields, "_id")
	return models.NewDocument(id, fields), nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func findByID(ctx context.Context, col *mongo.Collection, id any) (bson.M, error) {
	var fields bson.M
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
