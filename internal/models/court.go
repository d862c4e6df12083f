package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Court is a physical venue with live occupancy fields. CurrentPlayers and
// PublicUsersAtCourt are denormalized: the counter should mirror the set's
// cardinality, but the two are written as separate store operations, so the
// invariant is best-effort only.
type Court struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	Address            string               `bson:"address" json:"address"`
	Latitude           float64              `bson:"latitude" json:"latitude"`
	Longitude          float64              `bson:"longitude" json:"longitude"`
	Hours              string               `bson:"hours" json:"hours"`
	PhoneNumber        string               `bson:"phoneNumber" json:"phoneNumber"`
	Rating             float64              `bson:"rating" json:"rating"`
	CurrentPlayers     int                  `bson:"currentPlayers" json:"currentPlayers"`
	AveragePlayers     int                  `bson:"averagePlayers" json:"averagePlayers"`
	PublicUsersAtCourt []primitive.ObjectID `bson:"publicUsersAtCourt" json:"-"`
	Image              *string              `bson:"image" json:"image"`
}

// HasOccupant reports whether userID is in the public occupant set.
func (c *Court) HasOccupant(userID primitive.ObjectID) bool {
	for _, id := range c.PublicUsersAtCourt {
		if id == userID {
			return true
		}
	}
	return false
}
