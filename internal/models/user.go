package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NowMillis returns the current time as epoch milliseconds, the timestamp
// format used by every collection in this service.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// User represents a document in the 'users' collection.
// Password holds the bcrypt hash and must never be serialized in responses.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Firstname       string             `bson:"firstname" json:"firstname"`
	Lastname        string             `bson:"lastname" json:"lastname"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	ProfileImageURL string             `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	CreatedOn       int64              `bson:"createdon_datetime" json:"createdon_datetime"`
	UpdatedOn       int64              `bson:"updatedon_datetime" json:"updatedon_datetime"`
}

// UserProfileUpdate carries the mutable profile fields. Nil means "leave
// unchanged"; email is deliberately absent because it cannot be edited.
type UserProfileUpdate struct {
	Firstname       *string
	Lastname        *string
	Password        *string // already hashed by the service layer
	ProfileImageURL *string
}
