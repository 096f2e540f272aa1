package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"time"
)

// displayDateLayout renders dates like "Mon Jan 01 2024".
const displayDateLayout = "Mon Jan 02 2006"

// formatDate is the read-time rendering of an exercise date. Every response
// that carries an exercise uses it for the "date" field.
func formatDate(t time.Time) string {
	return t.UTC().Format(displayDateLayout)
}

// --- DTOs for API (Data Transfer Objects) ---

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ExerciseEntry is one exercise as it appears in listings and logs.
type ExerciseEntry struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// AddExerciseResponse echoes the new exercise alongside its owner.
type AddExerciseResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

type UserExercisesResponse struct {
	User          UserResponse    `json:"user"`
	UserExercises []ExerciseEntry `json:"userExercises"`
}

type ExerciseLogResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Log      []ExerciseEntry `json:"log"`
}

func mapUserToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID.Hex(), Username: u.Username}
}

func mapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = mapUserToResponse(&users[i])
	}
	return responses
}

func mapExerciseToEntry(ex *domain.Exercise) ExerciseEntry {
	return ExerciseEntry{
		ID:          ex.ID.Hex(),
		UserID:      ex.UserID.Hex(),
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        formatDate(ex.Date),
	}
}

func mapExercisesToEntries(exercises []domain.Exercise) []ExerciseEntry {
	entries := make([]ExerciseEntry, len(exercises))
	for i := range exercises {
		entries[i] = mapExerciseToEntry(&exercises[i])
	}
	return entries
}
