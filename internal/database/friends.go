// internal/database/friends.go
package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/courtsideapp/courtside/internal/models"
)

// FriendStore persists friend requests.
type FriendStore interface {
	// FindBetween returns the request between a and b in either direction,
	// or ErrNotFound.
	FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	Create(ctx context.Context, fr *models.FriendRequest) error
	// Accept flips the request to accepted, but only when recipient is the
	// original addressee and the request is still pending. ErrNotFound
	// otherwise (re-acceptance included).
	Accept(ctx context.Context, requestID, recipient primitive.ObjectID) error
	// ListAccepted returns accepted requests involving userID, either direction.
	ListAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error)
	IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error)
}

// MongoFriendStore is the MongoDB-backed FriendStore.
type MongoFriendStore struct {
	col *mongo.Collection
}

func NewMongoFriendStore(db *mongo.Database) *MongoFriendStore {
	return &MongoFriendStore{col: db.Collection("friend_requests")}
}

func eitherDirection(a, b primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"fromUserId": a, "toUserId": b},
		bson.M{"fromUserId": b, "toUserId": a},
	}}
}

func (s *MongoFriendStore) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	err := s.col.FindOne(ctx, eitherDirection(a, b)).Decode(&fr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

func (s *MongoFriendStore) Create(ctx context.Context, fr *models.FriendRequest) error {
	if fr.ID.IsZero() {
		fr.ID = primitive.NewObjectID()
	}
	if fr.CreatedAt.IsZero() {
		fr.CreatedAt = time.Now().UTC()
	}
	fr.Status = models.FriendPending

	_, err := s.col.InsertOne(ctx, fr)
	return err
}

func (s *MongoFriendStore) Accept(ctx context.Context, requestID, recipient primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": requestID, "toUserId": recipient, "status": models.FriendPending},
		bson.M{"$set": bson.M{"status": models.FriendAccepted, "acceptedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoFriendStore) ListAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	filter := bson.M{
		"status": models.FriendAccepted,
		"$or": bson.A{
			bson.M{"fromUserId": userID},
			bson.M{"toUserId": userID},
		},
	}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var frs []models.FriendRequest
	if err := cur.All(ctx, &frs); err != nil {
		return nil, err
	}
	return frs, nil
}

func (s *MongoFriendStore) IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	filter := eitherDirection(a, b)
	filter["status"] = models.FriendAccepted
	err := s.col.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
