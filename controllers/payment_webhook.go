package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/services"
)

// WebhookController receives Stripe events. It depends on the concrete
// StripeService because signature verification needs the endpoint secret.
type WebhookController struct {
	Stripe   *services.StripeService
	Payments *services.PaymentService
	Logger   *zap.Logger
}

func NewWebhookController(stripe *services.StripeService, payments *services.PaymentService, logger *zap.Logger) *WebhookController {
	return &WebhookController{Stripe: stripe, Payments: payments, Logger: logger}
}

// StripeWebhook handles incoming Stripe events. A bad signature is
// rejected with 400 before anything is touched. Every verified event is
// acknowledged with 200 whether or not it changes state, so Stripe stops
// retrying; processing failures are logged, not surfaced.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	event, err := wc.Stripe.ParseWebhook(c.Request)
	if err != nil {
		wc.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	if event.Type == "checkout.session.completed" {
		wc.handleCheckoutCompleted(c, event)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (wc *WebhookController) handleCheckoutCompleted(c *gin.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		wc.Logger.Error("failed to decode checkout session from event",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	paymentID, transactionID := services.SessionRefs(&sess)
	if paymentID == uuid.Nil || transactionID == "" {
		wc.Logger.Warn("completed session missing reconciliation references",
			zap.String("event_id", event.ID),
			zap.String("session_id", sess.ID),
		)
		return
	}

	if err := wc.Payments.ReconcileCompleted(c.Request.Context(), paymentID, transactionID); err != nil {
		wc.Logger.Error("failed to reconcile completed checkout",
			zap.String("event_id", event.ID),
			zap.String("payment_id", paymentID.String()),
			zap.Error(err),
		)
	}
}
