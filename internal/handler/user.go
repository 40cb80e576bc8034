package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"identity-service/internal/middleware"
	"identity-service/internal/service"
)

type UserHandler interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ListUsers(c *gin.Context)
	CountUsers(c *gin.Context)
}

type userHandler struct {
	userService service.UserService
	log         *logrus.Logger
}

func NewUserHandler(userService service.UserService, log *logrus.Logger) UserHandler {
	return &userHandler{userService: userService, log: log}
}

type UpdateProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Rank     string `json:"rank"`
	Role     string `json:"role"`
}

// GetProfile handles GET /api/profile
func (h *userHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int64)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.log.Errorf("Failed to get profile for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateProfile handles PUT /api/profile. Optional fields omitted from the
// request overwrite the stored values with empty strings (full-replace
// semantics, matching the original behavior).
func (h *userHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(int64)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for profile update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.userService.UpdateProfile(userID, req.Email, req.FullName, req.Rank, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			h.log.Errorf("Failed to update profile for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}

// ListUsers handles GET /api/users
func (h *userHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.log.Errorf("Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CountUsers handles GET /api/users/count
func (h *userHandler) CountUsers(c *gin.Context) {
	count, err := h.userService.CountUsers()
	if err != nil {
		h.log.Errorf("Failed to count users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
