// internal/database/courts.go
package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/courtsideapp/courtside/internal/models"
)

// CourtStore persists courts and their denormalized occupancy fields.
// AddOccupant and RemoveOccupant mutate the occupant set and the counter in
// one per-document update, but they are never tied to the user's presence
// pointer by a transaction, so the two can diverge under interleaving.
type CourtStore interface {
	List(ctx context.Context) ([]models.Court, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Court, error)
	// AddOccupant adds userID to the occupant set and increments the counter.
	// The increment is unconditional even if the set already held the user.
	AddOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error
	// RemoveOccupant pulls userID from the occupant set and decrements the
	// counter, unconditionally. Callers follow up with ClampFloor.
	RemoveOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error
	// ClampFloor resets a negative counter to zero. Repair pass, not a guard.
	ClampFloor(ctx context.Context, courtID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, courts []models.Court) error
}

// MongoCourtStore is the MongoDB-backed CourtStore.
type MongoCourtStore struct {
	col *mongo.Collection
}

func NewMongoCourtStore(db *mongo.Database) *MongoCourtStore {
	return &MongoCourtStore{col: db.Collection("courts")}
}

func (s *MongoCourtStore) List(ctx context.Context) ([]models.Court, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courts []models.Court
	if err := cur.All(ctx, &courts); err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *MongoCourtStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Court, error) {
	var c models.Court
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoCourtStore) AddOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": courtID}, bson.M{
		"$addToSet": bson.M{"publicUsersAtCourt": userID},
		"$inc":      bson.M{"currentPlayers": 1},
	})
	return err
}

func (s *MongoCourtStore) RemoveOccupant(ctx context.Context, courtID, userID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": courtID}, bson.M{
		"$pull": bson.M{"publicUsersAtCourt": userID},
		"$inc":  bson.M{"currentPlayers": -1},
	})
	return err
}

func (s *MongoCourtStore) ClampFloor(ctx context.Context, courtID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": courtID, "currentPlayers": bson.M{"$lt": 0}},
		bson.M{"$set": bson.M{"currentPlayers": 0}},
	)
	return err
}

func (s *MongoCourtStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *MongoCourtStore) InsertMany(ctx context.Context, courts []models.Court) error {
	docs := make([]interface{}, len(courts))
	for i := range courts {
		if courts[i].ID.IsZero() {
			courts[i].ID = primitive.NewObjectID()
		}
		if courts[i].PublicUsersAtCourt == nil {
			courts[i].PublicUsersAtCourt = []primitive.ObjectID{}
		}
		docs[i] = courts[i]
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}
