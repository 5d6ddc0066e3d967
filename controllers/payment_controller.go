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
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type PaymentController struct {
	Repo     repository.PaymentRepository
	Payments *services.PaymentService
	Notifier services.Notifier
	Logger   *zap.Logger
}

func NewPaymentController(repo repository.PaymentRepository, payments *services.PaymentService, notifier services.Notifier, logger *zap.Logger) *PaymentController {
	return &PaymentController{Repo: repo, Payments: payments, Notifier: notifier, Logger: logger}
}

type createPaymentRequest struct {
	TaskID        uuid.UUID `json:"task_id" binding:"required"`
	ClientID      uuid.UUID `json:"client_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Status        string    `json:"status" binding:"required,oneof=pending invoiced"`
	DueDate       time.Time `json:"due_date" binding:"required"`
	InvoiceNumber *string   `json:"invoice_number"`
	Notes         *string   `json:"notes"`
}

type checkoutRequest struct {
	Items     []services.CheckoutItem `json:"items" binding:"required,min=1,dive"`
	PaymentID uuid.UUID               `json:"paymentId" binding:"required"`
}

type verifyRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// GetPayments lists payments. Admins see everything; client users only
// their own client's rows.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	role, clientID := authScope(c)

	var (
		payments []models.Payment
		err      error
	)
	if role == models.RoleAdmin {
		payments, err = pc.Repo.List(c.Request.Context())
	} else if clientID != uuid.Nil {
		payments, err = pc.Repo.ListByClient(c.Request.Context(), clientID)
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "no client linked to this account"})
		return
	}
	if err != nil {
		pc.Logger.Error("failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := models.Payment{
		TaskID:        req.TaskID,
		ClientID:      req.ClientID,
		Amount:        req.Amount,
		Status:        req.Status,
		DueDate:       req.DueDate,
		InvoiceNumber: req.InvoiceNumber,
		Notes:         req.Notes,
	}
	if err := pc.Repo.Create(c.Request.Context(), &payment); err != nil {
		pc.Logger.Error("failed to create payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment"})
		return
	}

	if payment.Status == models.PaymentStatusInvoiced {
		pc.Notifier.Notify(c.Request.Context(), payment.ClientID.String(), services.EventPaymentInvoiced, map[string]interface{}{
			"paymentId": payment.ID.String(),
		})
	}
	c.JSON(http.StatusCreated, payment)
}

func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Amount        *float64   `json:"amount"`
		Status        *string    `json:"status" binding:"omitempty,oneof=pending invoiced received"`
		DueDate       *time.Time `json:"due_date"`
		InvoiceNumber *string    `json:"invoice_number"`
		Notes         *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.InvoiceNumber != nil {
		updates["invoice_number"] = *req.InvoiceNumber
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	// A manual move to received stamps the receipt time if the
	// reconciler has not already done so. Moving off received clears
	// the receipt fields: they only hold values while the status is
	// received.
	if req.Status != nil {
		if *req.Status == models.PaymentStatusReceived {
			existing, err := pc.Repo.GetByID(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
				return
			}
			if existing.ReceivedAt == nil {
				updates["received_at"] = time.Now().UTC()
			}
		} else {
			updates["received_at"] = nil
			updates["transaction_id"] = nil
		}
	}

	payment, err := pc.Repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		pc.Logger.Error("failed to update payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment"})
		return
	}

	if req.Status != nil {
		event := ""
		switch *req.Status {
		case models.PaymentStatusInvoiced:
			event = services.EventPaymentInvoiced
		case models.PaymentStatusReceived:
			event = services.EventPaymentReceived
		}
		if event != "" {
			pc.Notifier.Notify(c.Request.Context(), payment.ClientID.String(), event, map[string]interface{}{
				"paymentId": payment.ID.String(),
			})
		}
	}
	c.JSON(http.StatusOK, payment)
}

func (pc *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.Repo.Delete(c.Request.Context(), id); err != nil {
		pc.Logger.Error("failed to delete payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

// CreateCheckoutSession opens a hosted checkout session and hands back
// the redirect URL. No local state changes here; the payment only moves
// when the completion comes back through the webhook or verify.
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := pc.Payments.OpenCheckout(c.Request.Context(), req.PaymentID.String(), req.Items)
	if err != nil {
		pc.Logger.Error("failed to create checkout session",
			zap.String("payment_id", req.PaymentID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// VerifyPayment re-checks a checkout session directly with the processor
// and reconciles it if paid. Used when the success redirect lands before
// the webhook.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := pc.Payments.VerifySession(c.Request.Context(), req.SessionID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, services.ErrNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrPaymentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "payment not found"})
	default:
		pc.Logger.Error("failed to verify checkout session",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "verification failed"})
	}
}
