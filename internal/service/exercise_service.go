package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewExercise carries already-parsed input for AddExercise.
type NewExercise struct {
	Description string
	Duration    float64
	Date        *time.Time // nil means "now"
}

// LogQuery narrows GetExerciseLog. Bounds are inclusive; Limit <= 0 means no cap.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}

// --- Service Interface ---
type ExerciseService interface {
	AddExercise(ctx context.Context, userID primitive.ObjectID, input NewExercise) (*domain.User, *domain.Exercise, error)
	GetUserExercises(ctx context.Context, userID primitive.ObjectID) (*domain.User, []domain.Exercise, error)
	GetExerciseLog(ctx context.Context, userID primitive.ObjectID, query LogQuery) (*domain.User, []domain.Exercise, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userRepo repository.UserRepository, exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AddExercise logs an exercise for an existing user.
func (s *exerciseService) AddExercise(ctx context.Context, userID primitive.ObjectID, input NewExercise) (*domain.User, *domain.Exercise, error) {
	exercise := &domain.Exercise{
		UserID:      userID,
		Description: input.Description,
		Duration:    input.Duration,
	}
	if input.Date != nil {
		exercise.Date = input.Date.UTC()
	} else {
		exercise.Date = s.now()
	}
	if err := validateStruct(exercise); err != nil {
		return nil, nil, err
	}

	user, err := lookupUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, nil, err
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, nil, err
	}
	exercise.ID = exerciseID
	observability.RecordExerciseLogged()

	return user, exercise, nil
}

// GetUserExercises returns all of a user's exercises, unfiltered.
func (s *exerciseService) GetUserExercises(ctx context.Context, userID primitive.ObjectID) (*domain.User, []domain.Exercise, error) {
	return s.GetExerciseLog(ctx, userID, LogQuery{})
}

// GetExerciseLog returns a user's exercises narrowed by query.
func (s *exerciseService) GetExerciseLog(ctx context.Context, userID primitive.ObjectID, query LogQuery) (*domain.User, []domain.Exercise, error) {
	user, err := lookupUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, nil, err
	}

	exercises, err := s.exerciseRepo.GetByUserID(ctx, user.ID, repository.ExerciseFilter{
		From:  query.From,
		To:    query.To,
		Limit: query.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}

	return user, exercises, nil
}
