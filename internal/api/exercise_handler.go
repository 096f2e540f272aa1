package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// AddExercise godoc
// @Summary Log an exercise for a user
// @Tags Exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ID"
// @Param exercise body AddExerciseRequest true "Exercise details"
// @Success 200 {object} AddExerciseResponse
// @Failure 400 {object} gin.H "Missing or invalid input"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /users/{id}/exercises [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := bindBody(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	idParam := strings.TrimSpace(c.Param("id"))
	input, err := req.toNewExercise(idParam)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := parseUserID(idParam)
	if !ok {
		abortWithError(c, http.StatusNotFound, msgUserNotFound)
		return
	}

	user, exercise, err := h.exerciseService.AddExercise(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err, "Error adding exercise")
		return
	}

	c.JSON(http.StatusOK, AddExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        formatDate(exercise.Date),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	})
}

// GetUserExercises godoc
// @Summary Get a user and all of their exercises
// @Tags Exercises
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserExercisesResponse
// @Failure 400 {object} gin.H "Missing id"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /users/{id}/exercises [get]
func (h *ExerciseHandler) GetUserExercises(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	user, exercises, err := h.exerciseService.GetUserExercises(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Error retrieving user exercises")
		return
	}

	c.JSON(http.StatusOK, UserExercisesResponse{
		User:          mapUserToResponse(user),
		UserExercises: mapExercisesToEntries(exercises),
	})
}

// GetExerciseLog godoc
// @Summary Get a user's exercise log, optionally filtered
// @Tags Exercises
// @Produce json
// @Param id path string true "User ID"
// @Param from query string false "Inclusive lower date bound"
// @Param to query string false "Inclusive upper date bound"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} ExerciseLogResponse
// @Failure 400 {object} gin.H "Missing id or malformed date"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /users/{id}/logs [get]
func (h *ExerciseHandler) GetExerciseLog(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	var params LogQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	query, err := params.toLogQuery()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, exercises, err := h.exerciseService.GetExerciseLog(c.Request.Context(), userID, query)
	if err != nil {
		respondServiceError(c, err, "Error retrieving exercise log")
		return
	}

	c.JSON(http.StatusOK, ExerciseLogResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Count:    len(exercises),
		Log:      mapExercisesToEntries(exercises),
	})
}

// userIDParam reads :id, answering 400 when absent and 404 when it cannot
// name a user. ok is false once a response has been written.
func (h *ExerciseHandler) userIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	idParam := strings.TrimSpace(c.Param("id"))
	if idParam == "" {
		abortWithError(c, http.StatusBadRequest, msgIDRequired)
		return primitive.NilObjectID, false
	}
	id, ok := parseUserID(idParam)
	if !ok {
		abortWithError(c, http.StatusNotFound, msgUserNotFound)
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		internalError(c, err, logMessage)
	}
}
