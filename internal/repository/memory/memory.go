// Package memory holds process-local repositories with the same semantics as
// the MongoDB ones. Records are kept in insertion order.
package memory

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store backs both repositories. The zero value is not usable; call NewStore.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	exercises []domain.Exercise
}

func NewStore() *Store {
	return &Store{}
}

// Users returns a repository.UserRepository over the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Exercises returns a repository.ExerciseRepository over the store.
func (s *Store) Exercises() repository.ExerciseRepository {
	return &exerciseRepository{store: s}
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	if user.Username == "" {
		return primitive.NilObjectID, errors.New("username is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	r.store.users = append(r.store.users, *user)
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Username == username })
}

func (r *userRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.User, len(r.store.users))
	copy(users, r.store.users)
	return users, nil
}

type exerciseRepository struct {
	store *Store
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}
	if exercise.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise user ID is required")
	}

	exercise.ID = primitive.NewObjectID()
	// Mongo stores dates with millisecond precision.
	exercise.Date = exercise.Date.Truncate(time.Millisecond)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.exercises = append(r.store.exercises, *exercise)
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	exercises := []domain.Exercise{}
	for _, e := range r.store.exercises {
		if filter.Limit > 0 && int64(len(exercises)) >= filter.Limit {
			break
		}
		if e.UserID != userID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}
