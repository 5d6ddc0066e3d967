package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/repository"
)

type UserController struct {
	Users  repository.UserRepository
	Logger *zap.Logger
}

func NewUserController(users repository.UserRepository, logger *zap.Logger) *UserController {
	return &UserController{Users: users, Logger: logger}
}

// Me returns the authenticated user's profile.
func (uc *UserController) Me(c *gin.Context) {
	v, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := uc.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
