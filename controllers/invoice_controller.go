package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/repository"
)

type InvoiceController struct {
	Invoices repository.InvoiceRepository
	Logger   *zap.Logger
}

func NewInvoiceController(invoices repository.InvoiceRepository, logger *zap.Logger) *InvoiceController {
	return &InvoiceController{Invoices: invoices, Logger: logger}
}

type createInvoiceRequest struct {
	ClientID      uuid.UUID  `json:"client_id" binding:"required"`
	InvoiceNumber string     `json:"invoice_number" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Status        string     `json:"status" binding:"required"`
	IssueDate     time.Time  `json:"issue_date" binding:"required"`
	DueDate       *time.Time `json:"due_date"`
	Notes         *string    `json:"notes"`
}

func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	role, clientID := authScope(c)

	var (
		invoices []models.Invoice
		err      error
	)
	if role == models.RoleAdmin {
		invoices, err = ic.Invoices.List(c.Request.Context())
	} else if clientID != uuid.Nil {
		invoices, err = ic.Invoices.ListByClient(c.Request.Context(), clientID)
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "no client linked to this account"})
		return
	}
	if err != nil {
		ic.Logger.Error("failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice := models.Invoice{
		ClientID:      req.ClientID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		Status:        req.Status,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	if err := ic.Invoices.Create(c.Request.Context(), &invoice); err != nil {
		ic.Logger.Error("failed to create invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create invoice"})
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		InvoiceNumber *string    `json:"invoice_number"`
		Amount        *float64   `json:"amount"`
		Status        *string    `json:"status"`
		IssueDate     *time.Time `json:"issue_date"`
		DueDate       *time.Time `json:"due_date"`
		Notes         *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.InvoiceNumber != nil {
		updates["invoice_number"] = *req.InvoiceNumber
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IssueDate != nil {
		updates["issue_date"] = *req.IssueDate
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	invoice, err := ic.Invoices.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		ic.Logger.Error("failed to update invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update invoice"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Invoices.Delete(c.Request.Context(), id); err != nil {
		ic.Logger.Error("failed to delete invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}
