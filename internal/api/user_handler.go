package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser godoc
// @Summary Create a user, or return the existing one with that username
// @Tags Users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body CreateUserRequest true "Username"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Missing or blank username"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err, "Error creating user")
		return
	}

	c.JSON(http.StatusOK, mapUserToResponse(user))
}

// ListUsers godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, err, "Error listing users")
		return
	}

	c.JSON(http.StatusOK, mapUsersToResponse(users))
}
