// Package database holds the store interfaces and their MongoDB
// implementations. Stores are constructed explicitly and passed down;
// there is no package-level connection handle.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists and ErrUsernameExists signal registration conflicts.
var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
)

// Connect opens a client against the given MongoDB URL and returns the named
// database handle. The ping uses a short timeout so a dead store fails fast.
func Connect(ctx context.Context, url, name string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("unable to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	return client.Database(name), nil
}

// Stores bundles every store backed by one database handle.
type Stores struct {
	Users    UserStore
	Courts   CourtStore
	Friends  FriendStore
	Messages MessageStore
}

// NewMongoStores wires all stores against db.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Users:    NewMongoUserStore(db),
		Courts:   NewMongoCourtStore(db),
		Friends:  NewMongoFriendStore(db),
		Messages: NewMongoMessageStore(db),
	}
}
