package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/services"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the same way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionEvent(paymentID uuid.UUID, paymentIntent string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"payment_status": "paid",
				"payment_intent": %q,
				"metadata": {"payment_id": %q}
			}
		}
	}`, stripe.APIVersion, paymentIntent, paymentID.String()))
}

func newWebhookRouter(repo *mockPaymentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	stripeSvc := services.NewStripeService("sk_test_x", testWebhookSecret, "http://localhost:8080")
	paymentSvc := services.NewPaymentService(repo, stubStripeClient{}, noopNotifier{}, zap.NewNop())
	wc := NewWebhookController(stripeSvc, paymentSvc, zap.NewNop())

	router := gin.New()
	router.POST("/api/payments/webhook", wc.StripeWebhook)
	return router
}

func postWebhook(router *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type stubStripeClient struct{}

func (stubStripeClient) CreateCheckoutSession(paymentID string, items []services.CheckoutItem) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{}, nil
}

func (stubStripeClient) RetrieveCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{}, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, entityID, event string, payload map[string]interface{}) {
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	repo := new(mockPaymentRepo)
	router := newWebhookRouter(repo)
	payload := completedSessionEvent(uuid.New(), "pi_123")

	rec := postWebhook(router, payload, signPayload(payload, "whsec_wrong", time.Now()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Webhook Error:"))
	repo.AssertNotCalled(t, "MarkReceived")
}

func TestWebhookRejectsStaleTimestamp(t *testing.T) {
	repo := new(mockPaymentRepo)
	router := newWebhookRouter(repo)
	payload := completedSessionEvent(uuid.New(), "pi_123")

	rec := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "MarkReceived")
}

func TestWebhookReconcilesCompletedSession(t *testing.T) {
	paymentID := uuid.New()
	repo := new(mockPaymentRepo)
	repo.On("MarkReceived", mock.Anything, paymentID, "pi_123", mock.Anything).Return(true, nil)
	repo.On("GetByID", mock.Anything, paymentID).Return(receivedPayment(paymentID, "pi_123"), nil)
	router := newWebhookRouter(repo)
	payload := completedSessionEvent(paymentID, "pi_123")

	rec := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestWebhookReplayStillAcked(t *testing.T) {
	paymentID := uuid.New()
	repo := new(mockPaymentRepo)
	repo.On("MarkReceived", mock.Anything, paymentID, "pi_123", mock.Anything).Return(false, nil)
	repo.On("GetByID", mock.Anything, paymentID).Return(receivedPayment(paymentID, "pi_123"), nil)
	router := newWebhookRouter(repo)
	payload := completedSessionEvent(paymentID, "pi_123")

	first := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))
	second := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"received": true}`, second.Body.String())
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	repo := new(mockPaymentRepo)
	router := newWebhookRouter(repo)
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_2",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "object": "payment_intent"}}
	}`, stripe.APIVersion))

	rec := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	repo.AssertNotCalled(t, "MarkReceived")
}

func TestWebhookAcksSessionMissingMetadata(t *testing.T) {
	repo := new(mockPaymentRepo)
	router := newWebhookRouter(repo)
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_3",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_2",
				"object": "checkout.session",
				"payment_status": "paid",
				"payment_intent": "pi_123",
				"metadata": {}
			}
		}
	}`, stripe.APIVersion))

	rec := postWebhook(router, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	repo.AssertNotCalled(t, "MarkReceived")
}
