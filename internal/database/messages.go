// internal/database/messages.go
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtsideapp/courtside/internal/models"
)

// MessageStore persists direct messages.
type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) error
	// MarkRead flips every unread message from -> to to read.
	MarkRead(ctx context.Context, from, to primitive.ObjectID) error
	// Thread returns both directions between a and b, oldest first.
	Thread(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error)
	// ListFor returns every message involving userID, newest first.
	ListFor(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error)
	CountUnread(ctx context.Context, from, to primitive.ObjectID) (int, error)
}

// MongoMessageStore is the MongoDB-backed MessageStore.
type MongoMessageStore struct {
	col *mongo.Collection
}

func NewMongoMessageStore(db *mongo.Database) *MongoMessageStore {
	return &MongoMessageStore{col: db.Collection("messages")}
}

func (s *MongoMessageStore) Insert(ctx context.Context, m *models.Message) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, m)
	return err
}

func (s *MongoMessageStore) MarkRead(ctx context.Context, from, to primitive.ObjectID) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"fromUserId": from, "toUserId": to},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (s *MongoMessageStore) Thread(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"fromUserId": a, "toUserId": b},
		bson.M{"fromUserId": b, "toUserId": a},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return s.find(ctx, filter, opts)
}

func (s *MongoMessageStore) ListFor(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"fromUserId": userID},
		bson.M{"toUserId": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.find(ctx, filter, opts)
}

func (s *MongoMessageStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Message, error) {
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *MongoMessageStore) CountUnread(ctx context.Context, from, to primitive.ObjectID) (int, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"fromUserId": from, "toUserId": to, "read": false})
	return int(n), err
}
