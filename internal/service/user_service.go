package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// --- Service Interface ---
type UserService interface {
	// CreateUser returns the existing user when the username is taken.
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// --- Service Implementation ---

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// CreateUser implements get-or-create by username.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{Username: strings.TrimSpace(username)}
	if err := validateStruct(user); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, user.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent request inserted the same username between our
			// lookup and insert; hand back the record that won.
			winner, lookupErr := s.userRepo.GetByUsername(ctx, user.Username)
			if lookupErr != nil {
				return nil, fmt.Errorf("re-reading user after duplicate insert: %w", lookupErr)
			}
			return winner, nil
		}
		return nil, err
	}
	user.ID = userID
	observability.RecordUserCreated()

	return user, nil
}

// ListUsers returns every user; an empty store yields an empty slice.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// lookupUser maps a missing (or nil) id to ErrUserNotFound.
func lookupUser(ctx context.Context, userRepo repository.UserRepository, id primitive.ObjectID) (*domain.User, error) {
	if id == primitive.NilObjectID {
		return nil, ErrUserNotFound
	}
	user, err := userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
