package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/repository"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type ClientController struct {
	Clients     repository.ClientRepository
	Users       repository.UserRepository
	Passwords   *services.PasswordService
	Email       *services.EmailService
	Notifier    services.Notifier
	Logger      *zap.Logger
	FrontendURL string
}

func NewClientController(clients repository.ClientRepository, users repository.UserRepository, passwords *services.PasswordService, email *services.EmailService, notifier services.Notifier, frontendURL string, logger *zap.Logger) *ClientController {
	return &ClientController{Clients: clients, Users: users, Passwords: passwords, Email: email, Notifier: notifier, FrontendURL: frontendURL, Logger: logger}
}

type createClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Status  string  `json:"status" binding:"omitempty,oneof=active idle gone"`
	Notes   *string `json:"notes"`
}

func (cc *ClientController) GetClients(c *gin.Context) {
	clients, err := cc.Clients.List(c.Request.Context())
	if err != nil {
		cc.Logger.Error("failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	client, err := cc.Clients.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = models.ClientStatusActive
	}

	client := models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
		Notes:   req.Notes,
	}
	if err := cc.Clients.Create(c.Request.Context(), &client); err != nil {
		cc.Logger.Error("failed to create client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	cc.Notifier.Notify(c.Request.Context(), client.ID.String(), services.EventClientCreated, map[string]interface{}{
		"name": client.Name,
	})
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email" binding:"omitempty,email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Notes   *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	client, err := cc.Clients.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		cc.Logger.Error("failed to update client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClientStatus moves a client between active, idle, and gone.
func (cc *ClientController) UpdateClientStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=active idle gone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := cc.Clients.Update(c.Request.Context(), id, map[string]interface{}{"status": req.Status})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		cc.Logger.Error("failed to update client status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client status"})
		return
	}

	cc.Notifier.Notify(c.Request.Context(), client.ID.String(), services.EventClientStatusUpdated, map[string]interface{}{
		"status": client.Status,
	})
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.Clients.Delete(c.Request.Context(), id); err != nil {
		cc.Logger.Error("failed to delete client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client"})
		return
	}

	cc.Notifier.Notify(c.Request.Context(), id.String(), services.EventClientDeleted, nil)
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

// CreateAccount provisions a login for a client: a user with a generated
// temporary password, mailed to the client's address.
func (cc *ClientController) CreateAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := cc.Clients.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	if client.HasAccount {
		c.JSON(http.StatusConflict, gin.H{"error": "client already has an account"})
		return
	}

	password, err := cc.Passwords.GenerateTemporary()
	if err != nil {
		cc.Logger.Error("failed to generate temporary password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	hash, err := cc.Passwords.Hash(password)
	if err != nil {
		cc.Logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user := models.User{
		Name:     client.Name,
		Email:    client.Email,
		Password: hash,
		Role:     models.RoleUser,
		ClientID: &client.ID,
	}
	if err := cc.Users.Create(c.Request.Context(), &user); err != nil {
		cc.Logger.Error("failed to create client user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	if _, err := cc.Clients.Update(c.Request.Context(), id, map[string]interface{}{"has_account": true}); err != nil {
		cc.Logger.Error("failed to flag client account", zap.String("client_id", id.String()), zap.Error(err))
	}

	cc.sendCredentials(c, client.Email, client.Name, password)
	cc.Notifier.Notify(c.Request.Context(), client.ID.String(), services.EventAccountCreated, nil)
	c.JSON(http.StatusCreated, gin.H{"message": "account created and credentials sent"})
}

// ResendCredentials rotates the client user's password and mails it again.
func (cc *ClientController) ResendCredentials(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := cc.Clients.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	user, err := cc.Users.FindByClientID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client has no account"})
		return
	}

	password, err := cc.Passwords.GenerateTemporary()
	if err != nil {
		cc.Logger.Error("failed to generate temporary password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend credentials"})
		return
	}
	hash, err := cc.Passwords.Hash(password)
	if err != nil {
		cc.Logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend credentials"})
		return
	}
	user.Password = hash
	if err := cc.Users.Update(c.Request.Context(), user); err != nil {
		cc.Logger.Error("failed to rotate password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend credentials"})
		return
	}

	cc.sendCredentials(c, client.Email, client.Name, password)
	cc.Notifier.Notify(c.Request.Context(), client.ID.String(), services.EventCredentialsResent, nil)
	c.JSON(http.StatusOK, gin.H{"message": "credentials sent"})
}

func (cc *ClientController) sendCredentials(c *gin.Context, email, name, password string) {
	if cc.Email == nil {
		cc.Logger.Warn("email not configured, credentials not sent", zap.String("email", email))
		return
	}
	loginURL := cc.FrontendURL + "/login"
	if err := cc.Email.SendCredentialsEmail(email, name, email, password, loginURL); err != nil {
		cc.Logger.Error("failed to send credentials email", zap.String("email", email), zap.Error(err))
	}
}
