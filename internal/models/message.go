package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is append-only; only the Read flag ever changes, flipping to true
// when the recipient fetches the thread.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	Message    string             `bson:"message" json:"message"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Read       bool               `bson:"read" json:"read"`
}

// Conversation summarizes one message thread for the conversation list.
type Conversation struct {
	UserID      primitive.ObjectID `json:"userId"`
	Username    string             `json:"username"`
	ProfilePic  *string            `json:"profilePic"`
	LastMessage string             `json:"lastMessage"`
	Timestamp   time.Time          `json:"timestamp"`
	UnreadCount int                `json:"unreadCount"`
}
