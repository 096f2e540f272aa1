// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single logged activity for a user.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId" validate:"required"` // Weak reference to users._id
	Description string             `bson:"description" json:"description" validate:"required"`
	Duration    float64            `bson:"duration" json:"duration" validate:"gt=0"` // Minutes
	Date        time.Time          `bson:"date" json:"date"`
}
