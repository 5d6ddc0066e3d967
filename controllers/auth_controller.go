package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/repository"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type AuthController struct {
	Users       repository.UserRepository
	Tokens      *services.TokenService
	Passwords   *services.PasswordService
	Email       *services.EmailService
	Logger      *zap.Logger
	FrontendURL string
}

func NewAuthController(users repository.UserRepository, tokens *services.TokenService, passwords *services.PasswordService, email *services.EmailService, frontendURL string, logger *zap.Logger) *AuthController {
	return &AuthController{Users: users, Tokens: tokens, Passwords: passwords, Email: email, FrontendURL: frontendURL, Logger: logger}
}

type registerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Passwords.Validate(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := ac.Users.FindByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := ac.Passwords.Hash(req.Password)
	if err != nil {
		ac.Logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
		Phone:    req.Phone,
	}
	if err := ac.Users.Create(c.Request.Context(), &user); err != nil {
		ac.Logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := ac.Passwords.Compare(user.Password, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	clientID := ""
	if user.ClientID != nil {
		clientID = user.ClientID.String()
	}
	pair, err := ac.Tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role, clientID)
	if err != nil {
		ac.Logger.Error("failed to issue tokens", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := ac.Users.Update(c.Request.Context(), user); err != nil {
		ac.Logger.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ac.Tokens.ValidateToken(req.RefreshToken, services.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	pair, err := ac.Tokens.GenerateTokenPair(claims.UserID, claims.Email, claims.Role, claims.ClientID)
	if err != nil {
		ac.Logger.Error("failed to issue tokens", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Stateless tokens; the client discards its copies.
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ForgotPassword always answers 200 so the endpoint cannot be used to
// probe which emails exist.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), req.Email)
	if err == nil {
		token, err := ac.Tokens.GenerateResetToken(user.ID.String(), user.Email)
		if err != nil {
			ac.Logger.Error("failed to issue reset token", zap.Error(err))
		} else if ac.Email != nil {
			resetURL := ac.FrontendURL + "/reset-password?token=" + token
			if err := ac.Email.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
				ac.Logger.Error("failed to send reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the email exists, a reset link has been sent"})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ac.Tokens.ValidateToken(req.Token, services.TokenTypeReset)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset token"})
		return
	}
	if err := ac.Passwords.Validate(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.FindByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset token"})
		return
	}

	hash, err := ac.Passwords.Hash(req.Password)
	if err != nil {
		ac.Logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	user.Password = hash
	if err := ac.Users.Update(c.Request.Context(), user); err != nil {
		ac.Logger.Error("failed to update password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
