package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/anthemnandani/projec-traking-system-backend/repository"
)

var (
	// ErrNotCompleted is returned by VerifySession when the processor-side
	// session is not paid or its reconciliation references are missing.
	// The text is the message the verify endpoint reports to the client.
	ErrNotCompleted = errors.New("Payment not completed or metadata missing.")

	// ErrPaymentNotFound means the session carried a payment id that no
	// longer matches a local record.
	ErrPaymentNotFound = errors.New("payment not found")
)

// PaymentService drives the checkout and reconciliation flow. The local
// payment moves pending/invoiced -> received exactly once, no matter how
// many webhook deliveries or verify calls race for it.
type PaymentService struct {
	repo     repository.PaymentRepository
	stripe   StripeClient
	notifier Notifier
	logger   *zap.Logger
}

func NewPaymentService(repo repository.PaymentRepository, sc StripeClient, notifier Notifier, logger *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, stripe: sc, notifier: notifier, logger: logger}
}

// OpenCheckout opens a hosted checkout session for a pending payment and
// returns the redirect URL. Nothing is written locally; on processor
// failure there is nothing to roll back.
func (s *PaymentService) OpenCheckout(ctx context.Context, paymentID string, items []CheckoutItem) (string, error) {
	sess, err := s.stripe.CreateCheckoutSession(paymentID, items)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// ReconcileCompleted applies the received transition for a completed
// checkout. The write is a conditional update (status <> received), so a
// replayed completion event is a no-op: the first recorded transaction
// reference is kept and a later event carrying a different reference is
// only logged, never applied.
func (s *PaymentService) ReconcileCompleted(ctx context.Context, paymentID uuid.UUID, transactionID string) error {
	applied, err := s.repo.MarkReceived(ctx, paymentID, transactionID, time.Now().UTC())
	if err != nil {
		return err
	}

	if !applied {
		existing, err := s.repo.GetByID(ctx, paymentID)
		if err != nil {
			return ErrPaymentNotFound
		}
		if existing.TransactionID != nil && *existing.TransactionID != transactionID {
			s.logger.Warn("completion event for an already reconciled payment carries a different transaction reference",
				zap.String("payment_id", paymentID.String()),
				zap.String("recorded_transaction_id", *existing.TransactionID),
				zap.String("event_transaction_id", transactionID),
			)
		}
		return nil
	}

	s.logger.Info("payment reconciled",
		zap.String("payment_id", paymentID.String()),
		zap.String("transaction_id", transactionID),
	)

	// Best effort: a notification failure never unwinds the transition.
	if payment, err := s.repo.GetByID(ctx, paymentID); err == nil {
		s.notifier.Notify(ctx, payment.ClientID.String(), EventPaymentReceived, map[string]interface{}{
			"paymentId": paymentID.String(),
		})
	}
	return nil
}

// VerifySession is the client-initiated fallback for when the redirect
// back from hosted checkout beats the webhook, or the webhook is dropped.
// It trusts nothing from the caller beyond the session id and re-queries
// the processor directly.
func (s *PaymentService) VerifySession(ctx context.Context, sessionID string) error {
	sess, err := s.stripe.RetrieveCheckoutSession(sessionID)
	if err != nil {
		return err
	}

	paymentID, transactionID := SessionRefs(sess)
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid || paymentID == uuid.Nil || transactionID == "" {
		return ErrNotCompleted
	}

	return s.ReconcileCompleted(ctx, paymentID, transactionID)
}

// SessionRefs pulls the reconciliation references off a checkout session:
// the local payment id from metadata and the payment intent as the
// external transaction reference. Missing or malformed values come back
// as uuid.Nil / "".
func SessionRefs(sess *stripe.CheckoutSession) (uuid.UUID, string) {
	var transactionID string
	if sess.PaymentIntent != nil {
		transactionID = sess.PaymentIntent.ID
	}
	paymentID, err := uuid.Parse(sess.Metadata["payment_id"])
	if err != nil {
		return uuid.Nil, transactionID
	}
	return paymentID, transactionID
}
