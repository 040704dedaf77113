package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/licitation-service/internal/config"
	"github.com/spec-kit/licitation-service/internal/events"
)

// NotificationService logs domain events and stubs webhook delivery.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleEvent)
	n.dispatcher.Subscribe(events.EventLicitationCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventLicitationUpdated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventLicitationDeleted, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	// Delivery is stubbed; only the intent is logged.
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("type", string(event.Type)),
	)
}
