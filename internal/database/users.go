// internal/database/users.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/courtsideapp/courtside/internal/models"
)

// UserStore persists user records.
type UserStore interface {
	// Create inserts a new user after checking email/username uniqueness.
	// The check is query-before-insert, mirroring the rest of the system's
	// duplicate prevention; a race can still slip through.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ListOthers returns every user except id.
	ListOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error)
	// ListPublicOthers returns every public user except id.
	ListPublicOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error
	SetPublic(ctx context.Context, id primitive.ObjectID, public bool) error
	// SetCurrentCourt updates the user's presence pointer; nil clears it.
	SetCurrentCourt(ctx context.Context, id primitive.ObjectID, courtID *primitive.ObjectID) error
}

// MongoUserStore is the MongoDB-backed UserStore.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

func (s *MongoUserStore) Create(ctx context.Context, u *models.User) error {
	if err := s.col.FindOne(ctx, bson.M{"email": u.Email}).Err(); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if err := s.col.FindOne(ctx, bson.M{"username": u.Username}).Err(); err == nil {
		return ErrUsernameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := s.col.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) ListOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	return s.list(ctx, bson.M{"_id": bson.M{"$ne": id}})
}

func (s *MongoUserStore) ListPublicOthers(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	return s.list(ctx, bson.M{"_id": bson.M{"$ne": id}, "isPublic": true})
}

func (s *MongoUserStore) list(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error {
	set := bson.M{}
	if upd.Username != nil && *upd.Username != "" {
		set["username"] = *upd.Username
	}
	if upd.ProfilePic != nil && *upd.ProfilePic != "" {
		set["profilePic"] = *upd.ProfilePic
	}
	if upd.AvatarURL != nil && *upd.AvatarURL != "" {
		set["avatarUrl"] = *upd.AvatarURL
		set["profilePic"] = *upd.AvatarURL
	}
	if len(set) == 0 {
		return nil
	}

	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (s *MongoUserStore) SetPublic(ctx context.Context, id primitive.ObjectID, public bool) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isPublic": public}})
	return err
}

func (s *MongoUserStore) SetCurrentCourt(ctx context.Context, id primitive.ObjectID, courtID *primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"currentCourtId": courtID}})
	return err
}
