package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request statuses. Requests only ever move pending -> accepted.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
)

// FriendRequest is a directed request between two users. At most one record
// should exist per unordered pair; uniqueness is checked by querying both
// directions before insert, not enforced by the store.
type FriendRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	AcceptedAt *time.Time         `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
}

// Other returns the participant that is not userID.
func (f *FriendRequest) Other(userID primitive.ObjectID) primitive.ObjectID {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}
