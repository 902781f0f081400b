package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the read-only slice of a user document the chat core needs
type Profile struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	FullName         string             `bson:"full_name" json:"full_name"`
	IsDeleted        bool               `bson:"is_deleted" json:"-"`
	IsBlockedByAdmin bool               `bson:"is_blocked_by_admin" json:"-"`
}
