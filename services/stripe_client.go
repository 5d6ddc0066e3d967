package services

import (
	"bytes"
	"io"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

// CheckoutItem is one line of the cart sent to hosted checkout. Price is
// in major currency units and converted to the smallest unit for Stripe.
type CheckoutItem struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int64   `json:"quantity" binding:"required,min=1"`
}

// StripeClient is the hosted-checkout surface the payment flow depends on.
// Satisfied by StripeService and by fakes in tests.
type StripeClient interface {
	CreateCheckoutSession(paymentID string, items []CheckoutItem) (*stripe.CheckoutSession, error)
	RetrieveCheckoutSession(sessionID string) (*stripe.CheckoutSession, error)
}

type StripeService struct {
	SecretKey   string
	WebhookKey  string
	FrontendURL string
}

func NewStripeService(secretKey, webhookKey, frontendURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey, WebhookKey: webhookKey, FrontendURL: frontendURL}
}

// CreateCheckoutSession opens a hosted checkout session for the given line
// items. The local payment id travels as session metadata and comes back
// through the webhook or a verify call.
func (s *StripeService) CreateCheckoutSession(paymentID string, items []CheckoutItem) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(unitAmount(item.Price)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.FrontendURL + "/payments?checkout=success"),
		CancelURL:  stripe.String(s.FrontendURL + "/payments?checkout=cancelled"),
	}
	params.AddMetadata("payment_id", paymentID)

	return checkoutsession.New(params)
}

// unitAmount converts a major-unit price to the currency's smallest unit.
// Rounded, not truncated: 19.99 has no exact float64 representation and
// plain conversion would yield 1998 cents.
func unitAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *StripeService) RetrieveCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	return checkoutsession.Get(sessionID, nil)
}

// ParseWebhook verifies the Stripe-Signature header against the exact raw
// body and returns the decoded event. The body must not have been consumed
// before this; verification is computed over the raw bytes.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
