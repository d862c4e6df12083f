package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered player. Password always holds the encoded argon2id
// hash, never the plaintext.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username       string              `bson:"username" json:"username"`
	Email          string              `bson:"email" json:"email"`
	Password       string              `bson:"password" json:"-"`
	ProfilePic     *string             `bson:"profilePic" json:"profilePic"`
	AvatarURL      *string             `bson:"avatarUrl,omitempty" json:"avatarUrl"`
	IsPublic       bool                `bson:"isPublic" json:"isPublic"`
	CurrentCourtID *primitive.ObjectID `bson:"currentCourtId" json:"currentCourtId"`
	CreatedAt      time.Time           `bson:"createdAt" json:"-"`
}

// ProfileUpdate carries the mutable profile fields; nil means leave as-is.
// Setting AvatarURL also mirrors it into ProfilePic for display.
type ProfileUpdate struct {
	Username   *string `json:"username"`
	ProfilePic *string `json:"profilePic"`
	AvatarURL  *string `json:"avatarUrl"`
}

// UserCard is the minimal projection returned by user listings.
type UserCard struct {
	ID         primitive.ObjectID `json:"id"`
	Username   string             `json:"username"`
	ProfilePic *string            `json:"profilePic"`
}

// ContactCard is a UserCard plus the connection state relative to the requester.
type ContactCard struct {
	ID          primitive.ObjectID `json:"id"`
	Username    string             `json:"username"`
	ProfilePic  *string            `json:"profilePic"`
	IsConnected bool               `json:"isConnected"`
}

// Card projects a user down to its listing shape.
func (u *User) Card() UserCard {
	return UserCard{ID: u.ID, Username: u.Username, ProfilePic: u.ProfilePic}
}
