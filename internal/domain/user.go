package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person who logs exercises. Usernames are unique.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username" validate:"required"`
}
