package repository

import (
	"alcyxob/exercise-tracker/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows an exercise query. Nil bounds and a Limit <= 0
// leave that dimension unrestricted. Both bounds are inclusive.
type ExerciseFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create fails with ErrDuplicate when the username is already taken.
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter ExerciseFilter) ([]domain.Exercise, error)
}
