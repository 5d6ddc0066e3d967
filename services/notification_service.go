package services

import (
	"context"

	"go.uber.org/zap"
)

// Event names published for downstream consumers.
const (
	EventClientCreated       = "client.created"
	EventClientStatusUpdated = "client.status_updated"
	EventClientDeleted       = "client.deleted"
	EventAccountCreated      = "client.account_created"
	EventCredentialsResent   = "client.credentials_resent"

	EventPaymentInvoiced = "payment.invoiced"
	EventPaymentReceived = "payment.received"

	EventTaskCreated   = "task.created"
	EventTaskCompleted = "task.completed"
)

// Notifier fans an event out to whatever channels are configured. Calls
// are best effort; failures are logged and never surfaced to callers.
type Notifier interface {
	Notify(ctx context.Context, entityID, event string, payload map[string]interface{})
}

// EventPublisher pushes an event onto an external bus.
type EventPublisher interface {
	Publish(ctx context.Context, entityID, event string, payload map[string]interface{}) error
}

type NotificationService struct {
	publisher EventPublisher
	logger    *zap.Logger
}

// NewNotificationService wires the configured channels. publisher may be
// nil when no event bus is configured.
func NewNotificationService(publisher EventPublisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{publisher: publisher, logger: logger}
}

func (n *NotificationService) Notify(ctx context.Context, entityID, event string, payload map[string]interface{}) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, entityID, event, payload); err != nil {
		n.logger.Error("failed to publish event",
			zap.String("event", event),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
